package core

import (
	"fmt"
	"image/color"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a grid simulation must implement to be
// driven by the viewer.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Cells() []uint8
}

// PaletteProvider is implemented by sims whose Cells values index a palette
// rather than encoding on/off state.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Names lists registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build looks up name in the registry and constructs it.
func Build(name string, cfg map[string]string) (Sim, error) {
	factory, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, Names())
	}
	return factory(cfg)
}
