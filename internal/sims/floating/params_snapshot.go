package floating

import (
	"strconv"

	"wavefloat/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Physics
	dX, dY := w.field.Spacing()
	groups := []core.ParameterGroup{
		{
			Name: "Scene",
			Params: []core.Parameter{
				stringParam("scene", "Scene", w.cfg.Name),
				intParam("tps", "Ticks per second", w.cfg.TPS),
				intParam("bodies", "Bodies", len(w.bodies)),
			},
		},
		{
			Name: "Surface",
			Params: []core.Parameter{
				intParam("rows", "Rows", w.field.Rows()),
				intParam("columns", "Columns", w.field.Columns()),
				floatParam("dx", "Spacing x", dX),
				floatParam("dy", "Spacing y", dY),
				floatParam("courant", "Courant number", w.field.Courant(1/float64(w.cfg.TPS))),
			},
		},
		{
			Name: "Physics",
			Params: []core.Parameter{
				floatParam("wave_speed", "Wave speed", w.field.WaveSpeed()),
				floatParam("gravity", "Gravity", p.Gravity),
				floatParam("water_density", "Water density", p.WaterDensity),
				floatParam("gradient_coupling", "Gradient coupling", p.GradientCoupling),
				floatParam("horizontal_damping", "Horizontal damping", p.HorizontalDamping),
				floatParam("vertical_damping", "Vertical damping", p.VerticalDamping),
			},
		},
		{
			Name: "Waves",
			Params: []core.Parameter{
				floatParam("wave_amplitude", "Amplitude", w.cfg.Waves.Amplitude),
				floatParam("wave_sigma_x", "Sigma x", w.cfg.Waves.SigmaX),
				floatParam("wave_sigma_y", "Sigma y", w.cfg.Waves.SigmaY),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

var parameterControls = []core.ParameterControl{
	{Key: "wave_speed", Label: "Wave speed", Step: 0.05, Min: 0, HasMin: true, Max: 2, HasMax: true},
	{Key: "gradient_coupling", Label: "Gradient coupling", Step: 0.05, Min: 0, HasMin: true},
	{Key: "horizontal_damping", Label: "Horizontal damping", Step: 0.01, Min: 0, HasMin: true, Max: 1, HasMax: true},
	{Key: "vertical_damping", Label: "Vertical damping", Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
	{Key: "wave_amplitude", Label: "Wave amplitude", Step: 0.005, Min: 0, HasMin: true, Max: 0.2, HasMax: true},
}

// ParameterControls lists the values the HUD can adjust while running.
func (w *World) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), parameterControls...)
}

// SetFloatParameter updates a HUD-adjustable value, clamped to its control bounds.
func (w *World) SetFloatParameter(key string, value float64) bool {
	var ctl core.ParameterControl
	found := false
	for _, c := range parameterControls {
		if c.Key == key {
			ctl, found = c, true
			break
		}
	}
	if !found {
		return false
	}
	value = ctl.Clamp(value)
	switch key {
	case "wave_speed":
		w.cfg.Physics.WaveSpeed = value
		w.field.SetWaveSpeed(value)
	case "gradient_coupling":
		w.cfg.Physics.GradientCoupling = value
	case "horizontal_damping":
		w.cfg.Physics.HorizontalDamping = value
	case "vertical_damping":
		w.cfg.Physics.VerticalDamping = value
	case "wave_amplitude":
		w.cfg.Waves.Amplitude = value
	}
	return true
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
