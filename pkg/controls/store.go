package controls

import (
	"fmt"

	"github.com/taigrr/cubecam/pkg/math3d"
)

// Store is the transform parameter store: the raw integer position of every
// camera and cube control.
//
// It has no internal locking. All writes happen on the render loop's
// goroutine, either at startup through SetInitialPosition or when queued
// control events are applied.
type Store struct {
	values      [bodyCount][fieldCount]int
	initialized [bodyCount][fieldCount]bool
}

// NewStore returns a store with every control at the bottom of its range.
func NewStore() *Store {
	s := &Store{}
	for _, b := range Bodies() {
		for _, f := range Fields(b) {
			s.values[b][f] = FieldRange(f).Min
		}
	}
	return s
}

// SetInitialPosition establishes the startup position of one control. It
// may be called once per field; the value must lie in the field's range.
func (s *Store) SetInitialPosition(b Body, f Field, v int) error {
	if err := checkField(b, f); err != nil {
		return err
	}
	if s.initialized[b][f] {
		return fmt.Errorf("%w: %s.%s", ErrAlreadyInitialized, b, f)
	}
	if r := FieldRange(f); !r.Contains(v) {
		return fmt.Errorf("%w: %s.%s = %d not in [%d, %d]", ErrOutOfRange, b, f, v, r.Min, r.Max)
	}
	s.values[b][f] = v
	s.initialized[b][f] = true
	return nil
}

// SetInitialPositions sets every field of b from values. Fields missing from
// values are an error.
func (s *Store) SetInitialPositions(b Body, values map[Field]int) error {
	for _, f := range Fields(b) {
		v, ok := values[f]
		if !ok {
			return fmt.Errorf("%s.%s: no initial position", b, f)
		}
		if err := s.SetInitialPosition(b, f, v); err != nil {
			return err
		}
	}
	return nil
}

// Initialized reports whether every field of every body has its initial
// position.
func (s *Store) Initialized() bool {
	for _, b := range Bodies() {
		for _, f := range Fields(b) {
			if !s.initialized[b][f] {
				return false
			}
		}
	}
	return true
}

// Get returns the current raw position of a control.
func (s *Store) Get(b Body, f Field) (int, error) {
	if err := checkField(b, f); err != nil {
		return 0, err
	}
	return s.values[b][f], nil
}

// MustGet is Get for pairs known to be valid. It panics otherwise.
func (s *Store) MustGet(b Body, f Field) int {
	v, err := s.Get(b, f)
	if err != nil {
		panic(err)
	}
	return v
}

// set records a position reported by the control surface.
func (s *Store) set(b Body, f Field, v int) error {
	if err := checkField(b, f); err != nil {
		return err
	}
	if r := FieldRange(f); !r.Contains(v) {
		return fmt.Errorf("%w: %s.%s = %d", ErrOutOfRange, b, f, v)
	}
	s.values[b][f] = v
	return nil
}

// Pose is a body's parameters in engineering units.
type Pose struct {
	Translation math3d.Vec3 // millimetres
	Roll        float64     // degrees
	Pitch       float64     // degrees
	Yaw         float64     // degrees
	Scale       float64     // 1 for the camera
}

// Pose converts the raw positions of b to engineering units.
func (s *Store) Pose(b Body) Pose {
	v := s.values[b]
	p := Pose{
		Translation: math3d.V3(float64(v[TranslationX]), float64(v[TranslationY]), float64(v[TranslationZ])),
		Roll:        float64(v[Roll]) / 10,
		Pitch:       float64(v[Pitch]) / 10,
		Yaw:         float64(v[Yaw]) / 10,
		Scale:       1,
	}
	if b == Cube {
		p.Scale = float64(v[Scale])
	}
	return p
}
