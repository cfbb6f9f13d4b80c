package lbm

import (
	"lbm2d/internal/core"
)

// Parameters reports the run configuration and live status for the HUD.
func (s *Sim) Parameters() core.ParameterSnapshot {
	cfg := s.cfg
	tau, omega := s.Relaxation()
	summary := s.Summarize()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", cfg.Width),
				core.IntParam("h", "Height", cfg.Height),
				core.BoolParam("periodic", "Periodic", cfg.Periodic),
				core.IntParam("solid", "Solid cells", s.SolidCells()),
				core.Int64Param("noise_seed", "Noise seed", cfg.NoiseSeed),
			},
		},
		{
			Name: "Flow",
			Params: []core.Parameter{
				core.FloatParam("viscosity", "Viscosity", cfg.Viscosity),
				core.FloatParam("tau", "Tau", tau),
				core.FloatParam("omega", "Omega", omega),
				core.FloatParam("inlet_speed", "Inlet speed", s.InletSpeed()),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				core.IntParam("step", "Step", s.StepIndex()),
				{Key: "status", Label: "Status", Value: s.Status().String()},
				{Key: "display", Label: "Display", Value: s.mode.String()},
				core.FloatParam("mass", "Total mass", summary.Mass),
				core.FloatParam("max_speed", "Max speed", summary.MaxSpeed),
			},
		},
	}}
}

// ParameterControls lists the values adjustable while running.
func (s *Sim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{
			Key:    "inlet_speed",
			Label:  "Inlet speed",
			Type:   core.ParamTypeFloat,
			Step:   0.01,
			Min:    0,
			Max:    s.cfg.MaxSpeed * 0.9,
			HasMin: true,
			HasMax: true,
		},
	}
}

// SetFloatParameter applies a HUD adjustment. Values are clamped to the
// control bounds.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	for _, ctrl := range s.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		switch key {
		case "inlet_speed":
			return s.SetInletSpeed(ctrl.Clamp(value)) == nil
		}
	}
	return false
}
