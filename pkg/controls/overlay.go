package controls

import "fmt"

// Flag names an overlay layer.
type Flag int

const (
	ShowNormals Flag = iota
	ShowPlanes
	ShowPoints

	flagCount
)

// Flags lists every overlay flag.
func Flags() []Flag {
	return []Flag{ShowNormals, ShowPlanes, ShowPoints}
}

func (f Flag) String() string {
	switch f {
	case ShowNormals:
		return "Normals"
	case ShowPlanes:
		return "Planes"
	case ShowPoints:
		return "Points"
	}
	return fmt.Sprintf("Flag(%d)", int(f))
}

func (f Flag) valid() bool {
	return f >= 0 && f < flagCount
}

// OverlayToggleSet holds the three independent overlay flags. The only
// transition is Flip.
type OverlayToggleSet struct {
	flags [flagCount]bool
}

// NewOverlayToggleSet returns the startup state: planes shown, normals and
// points hidden.
func NewOverlayToggleSet() *OverlayToggleSet {
	o := &OverlayToggleSet{}
	o.flags[ShowPlanes] = true
	return o
}

// Flip inverts exactly one flag.
func (o *OverlayToggleSet) Flip(f Flag) error {
	if !f.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownFlag, int(f))
	}
	o.flags[f] = !o.flags[f]
	return nil
}

// Get returns the current value of f.
func (o *OverlayToggleSet) Get(f Flag) (bool, error) {
	if !f.valid() {
		return false, fmt.Errorf("%w: %d", ErrUnknownFlag, int(f))
	}
	return o.flags[f], nil
}

// Overlays is a copy of the toggle state.
type Overlays struct {
	Normals bool
	Planes  bool
	Points  bool
}

// Snapshot copies the current flags.
func (o *OverlayToggleSet) Snapshot() Overlays {
	return Overlays{
		Normals: o.flags[ShowNormals],
		Planes:  o.flags[ShowPlanes],
		Points:  o.flags[ShowPoints],
	}
}
