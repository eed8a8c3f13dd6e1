package flock

import "flockbg/internal/core"

// Parameters reports the current tunables for the HUD.
func (f *Flock) Parameters() core.ParameterSnapshot {
	c := f.cfg
	theme := "light"
	if f.dark {
		theme = "dark"
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("width", "Width", c.Width),
				core.IntParam("height", "Height", c.Height),
				core.IntParam("count", "Units", c.Count),
				core.Int64Param("seed", "Seed", c.Seed),
				core.StringParam("theme", "Theme", theme),
			},
		},
		{
			Name: "Rules",
			Params: []core.Parameter{
				core.FloatParam("alignment_weight", "Alignment", c.AlignmentWeight),
				core.FloatParam("cohesion_weight", "Cohesion", c.CohesionWeight),
				core.FloatParam("separation_weight", "Separation", c.SeparationWeight),
				core.FloatParam("perception_radius", "Perception r", c.PerceptionRadius),
				core.FloatParam("separation_radius", "Separation r", c.SeparationRadius),
				core.StringParam("falloff", "Falloff", string(c.Falloff)),
				core.StringParam("update_mode", "Update", string(c.UpdateMode)),
				core.BoolParam("spatial_index", "Spatial index", c.SpatialIndex),
			},
		},
		{
			Name: "Pointer",
			Params: []core.Parameter{
				core.FloatParam("avoid_radius", "Avoid radius", c.AvoidRadius),
				core.FloatParam("avoid_gain", "Avoid gain", c.AvoidGain),
			},
		},
	}}
}

var controls = []core.ParameterControl{
	{Key: "alignment_weight", Label: "Alignment", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "cohesion_weight", Label: "Cohesion", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "separation_weight", Label: "Separation", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "perception_radius", Label: "Perception r", Type: core.ParamTypeFloat, Step: 5, Min: 5, Max: 400, HasMin: true, HasMax: true},
	{Key: "separation_radius", Label: "Separation r", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: 400, HasMin: true, HasMax: true},
	{Key: "avoid_radius", Label: "Avoid radius", Type: core.ParamTypeFloat, Step: 10, Min: 0, Max: 800, HasMin: true, HasMax: true},
	{Key: "avoid_gain", Label: "Avoid gain", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 5, HasMin: true, HasMax: true},
}

// ParameterControls lists the values adjustable while running.
func (f *Flock) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, len(controls))
	copy(out, controls)
	return out
}

// SetFloatParameter updates a rule tunable, clamped to its control bounds.
// The separation radius never exceeds the perception radius afterwards.
func (f *Flock) SetFloatParameter(key string, value float64) bool {
	var ctrl core.ParameterControl
	found := false
	for _, c := range controls {
		if c.Key == key {
			ctrl, found = c, true
			break
		}
	}
	if !found {
		return false
	}
	p := f.cfg.floatField(key)
	if p == nil {
		return false
	}
	*p = ctrl.Clamp(value)
	if f.cfg.SeparationRadius > f.cfg.PerceptionRadius {
		if key == "perception_radius" {
			f.cfg.SeparationRadius = f.cfg.PerceptionRadius
		} else {
			f.cfg.PerceptionRadius = f.cfg.SeparationRadius
		}
	}
	return true
}
