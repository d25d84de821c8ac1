package brkga

import "fmt"

// ConfigError reports an invalid hyperparameter combination at construction.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("brkga: config: %s", e.Reason)
}

// ArgumentError reports an invalid argument to an already-constructed
// engine's operations (Evolve, ExchangeElite).
type ArgumentError struct {
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("brkga: argument: %s", e.Reason)
}
