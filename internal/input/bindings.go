package input

import "strings"

// Bindings maps actions to key names
type Bindings struct {
	Wireframe string
	Overlay   string
	Spawn     string
}

// DefaultBindings returns space for wireframe, c for the overlay and home
// to jump to the spawn point
func DefaultBindings() Bindings {
	return Bindings{
		Wireframe: "space",
		Overlay:   "c",
		Spawn:     "home",
	}
}

// NormalizeKey lower cases a key name and maps a few aliases
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case " ", "spacebar":
		return "space"
	case "pos1":
		return "home"
	}
	return key
}

func (b Bindings) normalized() Bindings {
	return Bindings{
		Wireframe: NormalizeKey(b.Wireframe),
		Overlay:   NormalizeKey(b.Overlay),
		Spawn:     NormalizeKey(b.Spawn),
	}
}
