// Package viz renders a decoded double-tour solution as an SVG diagram,
// adapted from the original GA package's single-route TSP visualizer.
package viz

import (
	"fmt"
	"math"
	"os"

	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/decoder"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/instance"
)

// VisualizeSolution draws the pickup tour (blue) and the delivery tour
// (green) over the instance's coordinates and writes the result to
// filename as SVG. It returns an error if inst was built without
// coordinates (e.g. via instance.New directly from distance matrices).
func VisualizeSolution(inst *instance.Instance, res decoder.Result, filename string) error {
	if inst.PickupCoords == nil || inst.DeliveryCoords == nil {
		return fmt.Errorf("viz: instance has no coordinates to plot")
	}

	minX, maxX := inst.PickupCoords[0][0], inst.PickupCoords[0][0]
	minY, maxY := inst.PickupCoords[0][1], inst.PickupCoords[0][1]
	for _, pts := range [][][2]float64{inst.PickupCoords, inst.DeliveryCoords} {
		for _, p := range pts {
			if p[0] < minX {
				minX = p[0]
			}
			if p[0] > maxX {
				maxX = p[0]
			}
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}

	const padding = 80.0
	const canvasWidth = 900.0
	const canvasHeight = 700.0

	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := math.Min((canvasWidth-2*padding)/spanX, (canvasHeight-2*padding)/spanY)

	transform := func(p [2]float64) (float64, float64) {
		return padding + (p[0]-minX)*scale, padding + (p[1]-minY)*scale
	}

	svg := fmt.Sprintf(`<svg width="%.0f" height="%.0f" xmlns="http://www.w3.org/2000/svg">`, canvasWidth, canvasHeight)
	svg += drawTour(inst.PickupCoords, res.PickupTour, "blue", transform)
	svg += drawTour(inst.DeliveryCoords, res.DeliveryTour, "green", transform)

	titleY := 25.0
	svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="18" font-weight="bold" fill="black">Cost %d (distance %d, relocations %d)</text>`,
		canvasWidth/2, titleY, res.Cost, res.Distance, res.Relocations)
	svg += `</svg>`

	return os.WriteFile(filename, []byte(svg), 0644)
}

func drawTour(coords [][2]float64, tour []int, color string, transform func([2]float64) (float64, float64)) string {
	svg := ""
	for i := 0; i < len(tour)-1; i++ {
		x1, y1 := transform(coords[tour[i]])
		x2, y2 := transform(coords[tour[i+1]])
		svg += fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" />`,
			x1, y1, x2, y2, color)
	}
	for _, item := range tour {
		x, y := transform(coords[item])
		svg += fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="6" fill="%s" stroke="black" stroke-width="1" />`, x, y, color)
		svg += fmt.Sprintf(`<text x="%.2f" y="%.2f" text-anchor="middle" font-family="Arial, sans-serif" font-size="10" fill="black">%02d</text>`,
			x, y-10, item)
	}
	return svg
}
