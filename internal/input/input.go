// Package input maps raw keyboard and mouse events to semantic game inputs
// and tracks a per-frame state for each of them.
package input

import "fmt"

// Semantic is a game-level input independent of the device producing it.
type Semantic int

const (
	Up Semantic = iota
	Down
	Left
	Right
	Accept
	Back
	Redo
	Hint
	Plus
	Minus
	Multiply
	Divide
	Hotbar1
	Hotbar2
	Hotbar3
	Hotbar4
	Hotbar5
	Hotbar6
)

var semanticNames = [...]string{
	"up", "down", "left", "right", "accept", "back", "redo", "hint",
	"plus", "minus", "multiply", "divide",
	"hotbar1", "hotbar2", "hotbar3", "hotbar4", "hotbar5", "hotbar6",
}

func (s Semantic) String() string {
	if s < 0 || int(s) >= len(semanticNames) {
		return fmt.Sprintf("semantic(%d)", int(s))
	}
	return semanticNames[s]
}

// Hotbars lists one hotbar semantic per hand slot, up to the largest hand.
var Hotbars = []Semantic{Hotbar1, Hotbar2, Hotbar3, Hotbar4, Hotbar5, Hotbar6}

// Hotbar returns the zero based slot of a hotbar semantic.
func (s Semantic) Hotbar() (int, bool) {
	if s >= Hotbar1 && s <= Hotbar6 {
		return int(s - Hotbar1), true
	}
	return 0, false
}

// State is the lifecycle of an input across frames. Pressed and Released
// last exactly one frame; Tick rolls them over to Held and AtRest.
type State int

const (
	AtRest State = iota
	Released
	Held
	Pressed
)

func (s State) String() string {
	switch s {
	case Pressed:
		return "pressed"
	case Held:
		return "held"
	case Released:
		return "released"
	default:
		return "at-rest"
	}
}

// Down reports whether the input is currently pressed or held.
func (s State) Down() bool { return s == Pressed || s == Held }

type Device int

const (
	Keyboard Device = iota
	Mouse
)

// Raw is a device event: a key name or a mouse button name.
type Raw struct {
	Device Device
	Code   string
}

func Key(code string) Raw    { return Raw{Device: Keyboard, Code: code} }
func Button(code string) Raw { return Raw{Device: Mouse, Code: code} }

func (r Raw) String() string {
	if r.Device == Mouse {
		return "mouse:" + r.Code
	}
	return "key:" + r.Code
}
