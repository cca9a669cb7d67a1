package config

import "sort"

// Presets are complete tuning profiles: pick one, tweak nothing.
var Presets = map[string]*Config{
	// Long time constants and weak gains: a lamp for the corner of the room.
	"mellow": {
		Signal: "sine", Dt: DefaultDt, Duration: 60.0,
		Filter: FilterConfig{TauValence: 4.0, TauArousal: 1.5, TauDominance: 2.5, MaxStep: 0.15},
		Energy: EnergyConfig{Decay: 0.990},
		Mapper: MapperConfig{BaseTurbulence: 0.05, ArousalGain: 0.5, EnergyGain: 0.2},
		Tank:   TankConfig{Width: 1.0, Height: 1.0, DampingBase: 0.990},
	},
	// Short time constants against the step source: watch the filter work.
	"snappy": {
		Signal: "step", Dt: DefaultDt, Duration: 30.0,
		Filter: FilterConfig{TauValence: 0.8, TauArousal: 0.25, TauDominance: 0.5, MaxStep: 0.4},
		Energy: EnergyConfig{Decay: 0.995},
		Mapper: MapperConfig{BaseTurbulence: 0.15, ArousalGain: 1.1, EnergyGain: 0.5},
		Tank:   TankConfig{Width: 1.0, Height: 1.0, DampingBase: 0.995},
	},
	// Noise source with hot gains: the lamp on a bad day.
	"stormy": {
		Signal: "noise", Dt: DefaultDt, Duration: 45.0,
		Filter: FilterConfig{TauValence: 1.2, TauArousal: 0.4, TauDominance: 0.8, MaxStep: 0.3},
		Energy: EnergyConfig{Decay: 0.997},
		Mapper: MapperConfig{BaseTurbulence: 0.2, ArousalGain: 1.2, EnergyGain: 0.6},
		Tank:   TankConfig{Width: 1.0, Height: 1.0, DampingBase: 0.993},
	},
	// Barely moves. For screenshots and soak tests.
	"glacial": {
		Signal: "sine", Dt: DefaultDt, Duration: 120.0,
		Filter: FilterConfig{TauValence: 6.0, TauArousal: 3.0, TauDominance: 4.0, MaxStep: 0.08},
		Energy: EnergyConfig{Decay: 0.985},
		Mapper: MapperConfig{BaseTurbulence: 0.04, ArousalGain: 0.35, EnergyGain: 0.15},
		Tank:   TankConfig{Width: 1.0, Height: 1.0, DampingBase: 0.988},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
