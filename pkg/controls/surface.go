package controls

import "fmt"

// Control declares one integer control on a surface. Positions move in steps
// of 1 within Range. OnChange runs on every position change made by the user;
// the Initial position is set without invoking it.
type Control struct {
	Panel    string
	Name     string
	Range    Range
	Initial  int
	OnChange func(value int)
}

// Surface is a UI that hosts bounded integer controls.
// The surface owns clamping: positions it reports always lie in the
// declared range.
type Surface interface {
	Declare(c Control) error
	SetPos(panel, name string, value int) error
	Pos(panel, name string) (int, error)
}

// Bind declares the 13 transform controls and the 3 overlay toggles on s,
// positioned from store and overlays. Every later change on the surface is
// posted to q.
func Bind(s Surface, store *Store, overlays *OverlayToggleSet, q *EventQueue) error {
	for _, b := range Bodies() {
		for _, f := range Fields(b) {
			c := Control{
				Panel:   b.Panel(),
				Name:    f.String(),
				Range:   FieldRange(f),
				Initial: store.MustGet(b, f),
				OnChange: func(v int) {
					q.Push(Event{Kind: FieldChanged, Body: b, Field: f, Value: v})
				},
			}
			if err := s.Declare(c); err != nil {
				return fmt.Errorf("declare %s.%s: %w", b, f, err)
			}
		}
	}

	for _, f := range Flags() {
		on, _ := overlays.Get(f)
		initial := 0
		if on {
			initial = 1
		}
		c := Control{
			Panel:   Cube.Panel(),
			Name:    f.String(),
			Range:   ToggleRange,
			Initial: initial,
			OnChange: func(int) {
				q.Push(Event{Kind: FlagToggled, Flag: f})
			},
		}
		if err := s.Declare(c); err != nil {
			return fmt.Errorf("declare toggle %s: %w", f, err)
		}
	}
	return nil
}
