package game

import (
	"context"
	"fmt"
	"slices"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/input"
	"svw.info/any4/internal/ports"
	"svw.info/any4/internal/rational"
)

// StateQuery is the read side of the input manager.
type StateQuery interface {
	State(s input.Semantic) input.State
}

// none marks an empty workbench slot.
const none = -1

// Workbench is the move being assembled: two hand indices and an operator.
type Workbench struct {
	Left, Right int
	Op          domain.Op
}

func emptyWorkbench() Workbench { return Workbench{Left: none, Right: none} }

func (w Workbench) Empty() bool { return w.Left == none && w.Right == none && w.Op == domain.OpNone }

// Snapshot is what views need to render a frame.
type Snapshot struct {
	Board     domain.Board
	HasBoard  bool
	Hand      []rational.Value
	Cursor    int
	Bench     Workbench
	Status    string
	Solved    int
	Played    int
	Remaining int
}

// Controller applies semantic inputs to the current board. It is polled once
// per frame and reacts to Pressed edges only.
type Controller struct {
	boards *Container
	hinter ports.Hinter

	board    domain.Board
	hasBoard bool
	hand     []rational.Value
	cursor   int
	bench    Workbench
	undo     [][]rational.Value
	redo     [][]rational.Value
	status   string
	done     bool
	solved   int
	played   int
}

func NewController(boards *Container, h ports.Hinter) *Controller {
	return &Controller{boards: boards, hinter: h, bench: emptyWorkbench()}
}

var opKeys = []struct {
	sem input.Semantic
	op  domain.Op
}{
	{input.Plus, domain.OpAdd},
	{input.Minus, domain.OpSub},
	{input.Multiply, domain.OpMul},
	{input.Divide, domain.OpDiv},
}

// Process handles one frame of input. The first call loads a board.
func (c *Controller) Process(ctx context.Context, q StateQuery) error {
	if !c.hasBoard {
		return c.NextBoard()
	}
	pressed := func(s input.Semantic) bool { return q.State(s) == input.Pressed }

	for _, s := range input.Hotbars {
		if pressed(s) {
			n, _ := s.Hotbar()
			c.pick(n)
		}
	}
	for _, k := range opKeys {
		if pressed(k.sem) {
			c.setOp(k.op)
		}
	}
	switch {
	case pressed(input.Left):
		c.moveCursor(-1)
	case pressed(input.Right):
		c.moveCursor(1)
	}
	if pressed(input.Up) {
		c.pick(c.cursor)
	}
	if pressed(input.Down) {
		c.bench = emptyWorkbench()
		c.status = ""
	}
	if pressed(input.Back) {
		c.Undo()
	}
	if pressed(input.Redo) {
		c.Redo()
	}
	if pressed(input.Hint) {
		if err := c.hint(ctx); err != nil {
			return err
		}
	}
	if pressed(input.Accept) {
		return c.accept()
	}
	return nil
}

// NextBoard replaces the current board with the next one from the queue.
func (c *Controller) NextBoard() error {
	b, err := c.boards.Next()
	if err != nil {
		c.status = err.Error()
		return err
	}
	c.board = b
	c.hasBoard = true
	c.hand = rational.Ints(b.Input)
	c.cursor = 0
	c.bench = emptyWorkbench()
	c.undo, c.redo = nil, nil
	c.done = false
	c.played++
	c.status = fmt.Sprintf("make %s (%s)", b.Target, b.Difficulty)
	return nil
}

func (c *Controller) pick(i int) {
	if i < 0 || i >= len(c.hand) || c.done {
		return
	}
	switch {
	case c.bench.Left == none || c.bench.Op == domain.OpNone:
		c.bench.Left = i
	case i != c.bench.Left:
		c.bench.Right = i
	}
	c.cursor = i
}

func (c *Controller) setOp(op domain.Op) {
	if c.bench.Left == none || c.done {
		c.status = "pick a number first"
		return
	}
	c.bench.Op = op
}

func (c *Controller) moveCursor(d int) {
	if len(c.hand) == 0 {
		return
	}
	c.cursor = (c.cursor + d + len(c.hand)) % len(c.hand)
}

// accept combines the workbench, or moves on once the board is finished or
// nothing has been assembled.
func (c *Controller) accept() error {
	if c.done || c.bench.Empty() {
		return c.NextBoard()
	}
	if c.bench.Left == none || c.bench.Right == none || c.bench.Op == domain.OpNone {
		c.status = "pick two numbers and an operator"
		return nil
	}
	a, b := c.hand[c.bench.Left], c.hand[c.bench.Right]
	res, ok := c.bench.Op.Apply(a, b)
	if !ok {
		c.status = "cannot divide by zero"
		return nil
	}
	c.undo = append(c.undo, slices.Clone(c.hand))
	c.redo = nil
	c.hand = combine(c.hand, c.bench.Left, c.bench.Right, res)
	c.cursor = min(c.bench.Left, c.bench.Right)
	c.status = fmt.Sprintf("%s %s %s = %s", a, c.bench.Op, b, res)
	c.bench = emptyWorkbench()
	c.checkDone()
	return nil
}

// combine puts res where the lower of the two operands was and drops the other.
func combine(hand []rational.Value, i, j int, res rational.Value) []rational.Value {
	lo, hi := min(i, j), max(i, j)
	out := make([]rational.Value, 0, len(hand)-1)
	for k, v := range hand {
		switch k {
		case lo:
			out = append(out, res)
		case hi:
		default:
			out = append(out, v)
		}
	}
	return out
}

func (c *Controller) checkDone() {
	if len(c.hand) != 1 {
		return
	}
	c.done = true
	if c.hand[0].Equal(c.board.Target) {
		c.solved++
		c.status = fmt.Sprintf("solved! %s", c.board.Target)
		return
	}
	c.status = fmt.Sprintf("got %s, wanted %s; back to retry or accept to skip", c.hand[0], c.board.Target)
}

// Undo restores the hand before the last combination.
func (c *Controller) Undo() {
	c.bench = emptyWorkbench()
	if len(c.undo) == 0 {
		c.status = "nothing to undo"
		return
	}
	if c.done && c.hand[0].Equal(c.board.Target) {
		c.solved--
	}
	c.redo = append(c.redo, c.hand)
	c.hand = c.undo[len(c.undo)-1]
	c.undo = c.undo[:len(c.undo)-1]
	c.done = false
	c.cursor = 0
	c.status = "undone"
}

// Redo reapplies the last undone combination.
func (c *Controller) Redo() {
	c.bench = emptyWorkbench()
	if len(c.redo) == 0 {
		c.status = "nothing to redo"
		return
	}
	c.undo = append(c.undo, c.hand)
	c.hand = c.redo[len(c.redo)-1]
	c.redo = c.redo[:len(c.redo)-1]
	c.cursor = 0
	c.status = "redone"
	c.checkDone()
}

func (c *Controller) hint(ctx context.Context) error {
	if c.hinter == nil || c.done {
		return nil
	}
	step, ok, err := c.hinter.Hint(ctx, c.hand, c.board.Target)
	if err != nil {
		return err
	}
	if !ok {
		c.status = "no solution from here; try back"
		return nil
	}
	c.status = "hint: " + step.String()
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Board:     c.board,
		HasBoard:  c.hasBoard,
		Hand:      slices.Clone(c.hand),
		Cursor:    c.cursor,
		Bench:     c.bench,
		Status:    c.status,
		Solved:    c.solved,
		Played:    c.played,
		Remaining: c.boards.Len(),
	}
}
