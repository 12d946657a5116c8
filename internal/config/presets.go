package config

import "sort"

var Presets = map[string]*Config{
	"soup": {
		Width: 64, Height: 32, Probability: 25, DelayMs: 80,
	},
	"dense": {
		Width: 80, Height: 40, Probability: 50, DelayMs: 60,
	},
	"sparse": {
		Width: 80, Height: 40, Probability: 10, DelayMs: 100,
	},
	"blinker": {
		Width: 5, Height: 5, Pattern: "blinker", Origin: OriginConfig{X: 1, Y: 1},
		DelayMs: 300, MaxGenerations: 20,
	},
	"glider": {
		Width: 20, Height: 20, Pattern: "glider", Origin: OriginConfig{X: 1, Y: 1},
		DelayMs: 80,
	},
	"spaceship": {
		Width: 40, Height: 12, Pattern: "lwss", Origin: OriginConfig{X: 2, Y: 4},
		DelayMs: 80,
	},
	"methuselah": {
		Width: 120, Height: 60, Pattern: "r-pentomino", Origin: OriginConfig{X: 58, Y: 28},
		DelayMs: 30, MaxGenerations: 1200,
	},
	"diehard": {
		Width: 40, Height: 20, Pattern: "diehard", Origin: OriginConfig{X: 16, Y: 8},
		DelayMs: 50,
	},
	"acorn": {
		Width: 160, Height: 80, Pattern: "acorn", Origin: OriginConfig{X: 76, Y: 38},
		DelayMs: 20, MaxGenerations: 5206,
	},
}

// GetPreset returns a copy of the named preset with display defaults filled
// in, or nil when there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Display == (DisplayConfig{}) {
		cfg.Display = DefaultConfig().Display
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
