package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/pmapview/internal/input"
)

var namedKeys = map[string]int32{
	"space":     rl.KeySpace,
	"home":      rl.KeyHome,
	"end":       rl.KeyEnd,
	"tab":       rl.KeyTab,
	"enter":     rl.KeyEnter,
	"escape":    rl.KeyEscape,
	"backspace": rl.KeyBackspace,
	"up":        rl.KeyUp,
	"down":      rl.KeyDown,
	"left":      rl.KeyLeft,
	"right":     rl.KeyRight,
	"pageup":    rl.KeyPageUp,
	"pagedown":  rl.KeyPageDown,
	"f1":        rl.KeyF1,
	"f2":        rl.KeyF2,
	"f3":        rl.KeyF3,
	"f4":        rl.KeyF4,
}

// keyCode resolves a binding name to a raylib key. Single letters and
// digits map to their key codes.
func keyCode(name string) (int32, bool) {
	name = input.NormalizeKey(name)
	if code, ok := namedKeys[name]; ok {
		return code, true
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return rl.KeyA + int32(c-'a'), true
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), true
		}
	}
	return 0, false
}

// boundKeys returns the raylib keys for the controller bindings
func boundKeys(b input.Bindings) map[string]int32 {
	keys := make(map[string]int32)
	for _, name := range []string{b.Wireframe, b.Overlay, b.Spawn} {
		if code, ok := keyCode(name); ok {
			keys[name] = code
		}
	}
	return keys
}
