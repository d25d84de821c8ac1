package instance

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Loader reads pickup/delivery coordinate files and builds an Instance. The
// concrete on-disk format is this repository's own choice (the decoder and
// engine are agnostic to it); Load mirrors the five-line TSPLIB-style
// preamble the original solver's loader scanned for a DIMENSION field.
type Loader struct {
	N int
	L int
	H int
}

// Load reads the pickup and delivery area files and constructs an Instance.
func (ldr Loader) Load(pickupPath, deliveryPath string) (*Instance, error) {
	pickupPts, err := readPoints(pickupPath, ldr.N+1)
	if err != nil {
		return nil, fmt.Errorf("instance: loading pickup area %q: %w", pickupPath, err)
	}
	deliveryPts, err := readPoints(deliveryPath, ldr.N+1)
	if err != nil {
		return nil, fmt.Errorf("instance: loading delivery area %q: %w", deliveryPath, err)
	}
	return FromCoordinates(pickupPts, deliveryPts, ldr.L, ldr.H)
}

// readPoints skips the five-line preamble and reads up to want "<id> <x> <y>"
// rows, ordered by their position in the file (the depot is row 0).
func readPoints(path string, want int) ([][2]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for i := 0; i < 5 && scanner.Scan(); i++ {
		// preamble lines (one of which may carry a DIMENSION field) are
		// informational only; the point count is driven by want.
	}

	pts := make([][2]float64, 0, want)
	for len(pts) < want && scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing x coordinate %q: %w", fields[1], err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parsing y coordinate %q: %w", fields[2], err)
		}
		pts = append(pts, [2]float64{x, y})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(pts) != want {
		return nil, fmt.Errorf("expected %d points, got %d", want, len(pts))
	}
	return pts, nil
}
