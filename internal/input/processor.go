package input

import "slices"

// Processor owns the state of one group of raw inputs bound to a semantic.
type Processor interface {
	Press()
	Release()
	// Tick advances Pressed to Held and Released to AtRest.
	Tick()
	State() State
	Matches(r Raw) bool
}

type processor struct {
	device Device
	codes  []string
	state  State
}

func (p *processor) Press() {
	if !p.state.Down() {
		p.state = Pressed
	}
}

func (p *processor) Release() {
	if p.state.Down() {
		p.state = Released
	}
}

func (p *processor) Tick() {
	switch p.state {
	case Pressed:
		p.state = Held
	case Released:
		p.state = AtRest
	}
}

func (p *processor) State() State { return p.state }

func (p *processor) Matches(r Raw) bool {
	return r.Device == p.device && slices.Contains(p.codes, r.Code)
}

// KeyboardProcessor tracks a set of keys acting as one input.
type KeyboardProcessor struct{ processor }

func NewKeyboard(keys ...string) *KeyboardProcessor {
	return &KeyboardProcessor{processor{device: Keyboard, codes: keys}}
}

// MouseProcessor tracks a set of mouse buttons acting as one input.
type MouseProcessor struct{ processor }

func NewMouse(buttons ...string) *MouseProcessor {
	return &MouseProcessor{processor{device: Mouse, codes: buttons}}
}
