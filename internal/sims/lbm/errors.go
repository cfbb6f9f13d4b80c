package lbm

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by every ConfigError.
	ErrConfiguration = errors.New("lbm: invalid configuration")
	// ErrDiverged is wrapped by every DivergenceError.
	ErrDiverged = errors.New("lbm: numerical divergence")
)

// ConfigError reports a rejected configuration field. It is returned by New
// before any lattice memory is allocated.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("lbm: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DivergenceKind names the health check that failed.
type DivergenceKind string

const (
	DensityNonFinite   DivergenceKind = "non-finite density"
	DensityNonPositive DivergenceKind = "non-positive density"
	DensityTooHigh     DivergenceKind = "density above bound"
	VelocityNonFinite  DivergenceKind = "non-finite velocity"
	SpeedTooHigh       DivergenceKind = "speed above bound"
)

// DivergenceError describes the first unhealthy cell found after a step.
type DivergenceError struct {
	Step  int
	Row   int
	Col   int
	Kind  DivergenceKind
	Value float64
	Limit float64
}

func (e *DivergenceError) Error() string {
	if e.Limit != 0 {
		return fmt.Sprintf("lbm: step %d: %s at (row %d, col %d): %g (limit %g)",
			e.Step, e.Kind, e.Row, e.Col, e.Value, e.Limit)
	}
	return fmt.Sprintf("lbm: step %d: %s at (row %d, col %d): %g", e.Step, e.Kind, e.Row, e.Col, e.Value)
}

func (e *DivergenceError) Unwrap() error { return ErrDiverged }
