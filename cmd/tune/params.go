package main

import (
	"github.com/pthm-cable/bubbles/config"
)

// ParamDef defines a single tunable parameter.
type ParamDef struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Defs []ParamDef
}

// NewParamVector creates the motion parameters the tuner searches over.
func NewParamVector(cfg *config.Config) *ParamVector {
	return &ParamVector{
		Defs: []ParamDef{
			{Name: "stiffness", Path: "spring.stiffness", Min: 50, Max: 3000, Default: cfg.Spring.Stiffness},
			{Name: "damping_ratio", Path: "spring.damping_ratio", Min: 0.1, Max: 1.5, Default: cfg.Spring.DampingRatio},
			{Name: "friction", Path: "fling.friction", Min: 0.1, Max: 3, Default: cfg.Fling.Friction},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Defs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		v[i] = def.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		normalized[i] = (raw[i] - def.Min) / (def.Max - def.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		raw[i] = def.Min + normalized[i]*(def.Max-def.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Defs))
	for i, def := range pv.Defs {
		val := v[i]
		if val < def.Min {
			val = def.Min
		}
		if val > def.Max {
			val = def.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped values into cfg. Order matches Defs.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Spring.Stiffness = clamped[0]
	cfg.Spring.DampingRatio = clamped[1]
	cfg.Fling.Friction = clamped[2]
	cfg.Recompute()
}
