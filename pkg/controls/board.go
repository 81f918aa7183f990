package controls

import (
	"errors"
	"fmt"
)

var (
	// ErrNoControl is returned when a panel/name pair was never declared.
	ErrNoControl = errors.New("no such control")
	// ErrDuplicateControl is returned when a panel/name pair is declared twice.
	ErrDuplicateControl = errors.New("control already declared")
)

// Slider is a declared control and its current position.
type Slider struct {
	Control
	Pos int
}

// Board is an in-memory Surface: an ordered list of sliders grouped into
// panels. Front ends (the terminal panel, tests) draw it and feed it user
// input.
type Board struct {
	sliders []*Slider
	index   map[string]int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{index: make(map[string]int)}
}

func key(panel, name string) string {
	return panel + "/" + name
}

// Declare adds a control at its initial position, clamped into range.
func (b *Board) Declare(c Control) error {
	k := key(c.Panel, c.Name)
	if _, ok := b.index[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateControl, k)
	}
	if c.Range.Max < c.Range.Min {
		return fmt.Errorf("%s: empty range [%d, %d]", k, c.Range.Min, c.Range.Max)
	}
	b.index[k] = len(b.sliders)
	b.sliders = append(b.sliders, &Slider{Control: c, Pos: c.Range.Clamp(c.Initial)})
	return nil
}

// SetPos moves a control, clamping into range. OnChange fires only when the
// position actually changes.
func (b *Board) SetPos(panel, name string, value int) error {
	i, ok := b.index[key(panel, name)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoControl, key(panel, name))
	}
	b.move(i, value)
	return nil
}

// Pos returns a control's current position.
func (b *Board) Pos(panel, name string) (int, error) {
	i, ok := b.index[key(panel, name)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNoControl, key(panel, name))
	}
	return b.sliders[i].Pos, nil
}

// Len returns the number of declared controls.
func (b *Board) Len() int {
	return len(b.sliders)
}

// At returns the i-th declared control.
func (b *Board) At(i int) *Slider {
	return b.sliders[i]
}

// Nudge moves the i-th control by delta steps.
func (b *Board) Nudge(i, delta int) {
	if i < 0 || i >= len(b.sliders) {
		return
	}
	b.move(i, b.sliders[i].Pos+delta)
}

// SetFraction moves the i-th control to frac of the way along its range.
// Used for mouse clicks on a slider track.
func (b *Board) SetFraction(i int, frac float64) {
	if i < 0 || i >= len(b.sliders) {
		return
	}
	r := b.sliders[i].Range
	b.move(i, r.Min+int(frac*float64(r.Span())+0.5))
}

// Toggle flips a 0/1 control.
func (b *Board) Toggle(i int) {
	if i < 0 || i >= len(b.sliders) {
		return
	}
	s := b.sliders[i]
	if s.Pos == s.Range.Min {
		b.move(i, s.Range.Max)
	} else {
		b.move(i, s.Range.Min)
	}
}

// Find returns the index of a control, or -1.
func (b *Board) Find(panel, name string) int {
	if i, ok := b.index[key(panel, name)]; ok {
		return i
	}
	return -1
}

func (b *Board) move(i, value int) {
	s := b.sliders[i]
	value = s.Range.Clamp(value)
	if value == s.Pos {
		return
	}
	s.Pos = value
	if s.OnChange != nil {
		s.OnChange(value)
	}
}
