package signal

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/solhav/moodlamp/internal/engine"
)

// factories builds each named source; seeded ones get their own generator
// so swapping sources never disturbs the engine's random stream.
var factories = map[string]func(period float64, seed int64) engine.Source{
	"sine": func(period float64, _ int64) engine.Source {
		return NewSine(period)
	},
	"noise": func(period float64, seed int64) engine.Source {
		return NewNoise(period, rand.New(rand.NewSource(seed)))
	},
	"step": func(period float64, _ int64) engine.Source {
		return NewStep(period)
	},
	"still": func(period float64, _ int64) engine.Source {
		return &Still{}
	},
}

// New constructs a named source. A period of zero or less falls back to
// DefaultPeriod.
func New(name string, period float64, seed int64) (engine.Source, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("signal: unknown source %q (have %v)", name, Names())
	}
	if period <= 0 {
		period = DefaultPeriod
	}
	return f(period, seed), nil
}

// Names lists the built-in sources in stable order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
