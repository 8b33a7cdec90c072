// Package input translates window events into camera and display flag
// changes.
package input

import (
	"github.com/philipparndt/pmapview/pkg/geometry"
)

// Button identifies a pointer button
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Event is a window event delivered by a frontend
type Event interface {
	event()
}

type ButtonDown struct {
	Button Button
}

type ButtonUp struct {
	Button Button
}

// Move carries the pointer position and its change since the last move,
// both in window pixels with y pointing down
type Move struct {
	Pos   geometry.Vector2
	Delta geometry.Vector2
}

// Wheel carries the vertical scroll amount; positive scrolls away from
// the user
type Wheel struct {
	DY float64
}

// KeyDown and KeyUp carry a lower case key name such as "space" or "c"
type KeyDown struct {
	Key string
}

type KeyUp struct {
	Key string
}

type Resize struct {
	Width, Height int
}

type Quit struct{}

func (ButtonDown) event() {}
func (ButtonUp) event()   {}
func (Move) event()       {}
func (Wheel) event()      {}
func (KeyDown) event()    {}
func (KeyUp) event()      {}
func (Resize) event()     {}
func (Quit) event()       {}
