package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svw.info/any4/internal/domain"
	"svw.info/any4/internal/game"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	targetStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	numberStyle = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	cursorStyle = numberStyle.BorderForeground(lipgloss.Color("39"))
	pickedStyle = numberStyle.BorderForeground(lipgloss.Color("214")).Bold(true)
	statusStyle = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tierStyles = map[domain.Difficulty]lipgloss.Style{
		domain.Easy:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		domain.Moderate: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		domain.Hard:     lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}
)

// view is a scene object that re-reads the controller on every update.
type view struct {
	ctl   *game.Controller
	snap  game.Snapshot
	depth int
	draw  func(game.Snapshot) string
}

func (v *view) Update()      { v.snap = v.ctl.Snapshot() }
func (v *view) Draw() string { return v.draw(v.snap) }
func (v *view) Depth() int   { return v.depth }

func newScene(ctl *game.Controller) *game.Scene {
	s := &game.Scene{}
	s.Add(&view{ctl: ctl, depth: 4, draw: drawStatus})
	s.Add(&view{ctl: ctl, depth: 0, draw: drawHeader})
	s.Add(&view{ctl: ctl, depth: 2, draw: drawHand})
	s.Add(&view{ctl: ctl, depth: 1, draw: drawTarget})
	s.Add(&view{ctl: ctl, depth: 3, draw: drawBench})
	s.Add(&view{ctl: ctl, depth: 5, draw: func(game.Snapshot) string { return helpStyle.Render(helpText) }})
	return s
}

const helpText = "1-6/w pick  a/d move  + - x / op  enter combine  backspace undo  r redo  h hint  s clear  q quit"

func drawHeader(s game.Snapshot) string {
	return titleStyle.Render("any4") + fmt.Sprintf("  solved %d of %d  (%d queued)", s.Solved, s.Played, s.Remaining)
}

func drawTarget(s game.Snapshot) string {
	if !s.HasBoard {
		return targetStyle.Render("no board")
	}
	tier := tierStyles[s.Board.Difficulty].Render(s.Board.Difficulty.String())
	return "target " + targetStyle.Render(s.Board.Target.String()) + "  " + tier
}

func drawHand(s game.Snapshot) string {
	cells := make([]string, 0, len(s.Hand))
	for i, v := range s.Hand {
		st := numberStyle
		switch {
		case i == s.Bench.Left || i == s.Bench.Right:
			st = pickedStyle
		case i == s.Cursor:
			st = cursorStyle
		}
		cells = append(cells, st.Render(v.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func drawBench(s game.Snapshot) string {
	slot := func(i int) string {
		if i < 0 || i >= len(s.Hand) {
			return "_"
		}
		return s.Hand[i].String()
	}
	op := s.Bench.Op.String()
	if op == "" {
		op = "?"
	}
	return strings.Join([]string{slot(s.Bench.Left), op, slot(s.Bench.Right)}, " ")
}

func drawStatus(s game.Snapshot) string { return statusStyle.Render(s.Status) }
