package input

// Manager routes raw events to every matching processor and answers state
// queries per semantic. A semantic may be bound to several processors; its
// state is the strongest among them.
type Manager struct {
	processors []Processor
	bindings   map[Semantic][]int
}

func NewManager() *Manager {
	return &Manager{bindings: make(map[Semantic][]int)}
}

func (m *Manager) Register(s Semantic, p Processor) {
	m.processors = append(m.processors, p)
	m.bindings[s] = append(m.bindings[s], len(m.processors)-1)
}

func (m *Manager) Press(r Raw) {
	for _, p := range m.processors {
		if p.Matches(r) {
			p.Press()
		}
	}
}

func (m *Manager) Release(r Raw) {
	for _, p := range m.processors {
		if p.Matches(r) {
			p.Release()
		}
	}
}

// Tick is called once at the end of every frame.
func (m *Manager) Tick() {
	for _, p := range m.processors {
		p.Tick()
	}
}

// State returns AtRest for semantics with no binding.
func (m *Manager) State(s Semantic) State {
	st := AtRest
	for _, i := range m.bindings[s] {
		if ps := m.processors[i].State(); ps > st {
			st = ps
		}
	}
	return st
}

// Pressed is shorthand for State(s) == Pressed.
func (m *Manager) Pressed(s Semantic) bool { return m.State(s) == Pressed }

// Bound reports whether any processor would react to r.
func (m *Manager) Bound(r Raw) bool {
	for _, p := range m.processors {
		if p.Matches(r) {
			return true
		}
	}
	return false
}

// Key and button names follow the terminal's spelling of them.
const (
	MouseLeft  = "left"
	MouseRight = "right"
)

// DefaultBindings returns a manager with the standard any4 key map.
func DefaultBindings() *Manager {
	m := NewManager()
	m.Register(Accept, NewKeyboard("enter", " "))
	m.Register(Accept, NewMouse(MouseLeft))
	m.Register(Back, NewKeyboard("backspace"))
	m.Register(Back, NewMouse(MouseRight))
	m.Register(Up, NewKeyboard("w", "up"))
	m.Register(Down, NewKeyboard("s", "down"))
	m.Register(Left, NewKeyboard("a", "left"))
	m.Register(Right, NewKeyboard("d", "right"))
	m.Register(Redo, NewKeyboard("r"))
	m.Register(Hint, NewKeyboard("h", "?"))
	m.Register(Plus, NewKeyboard("+"))
	m.Register(Minus, NewKeyboard("-"))
	m.Register(Multiply, NewKeyboard("x", "*"))
	m.Register(Divide, NewKeyboard("/"))
	m.Register(Hotbar1, NewKeyboard("1"))
	m.Register(Hotbar2, NewKeyboard("2"))
	m.Register(Hotbar3, NewKeyboard("3"))
	m.Register(Hotbar4, NewKeyboard("4"))
	m.Register(Hotbar5, NewKeyboard("5"))
	m.Register(Hotbar6, NewKeyboard("6"))
	return m
}
