// Package controls holds the authoritative, user-adjustable scene parameters:
// bounded integer transform controls for the camera and the cube, and the
// overlay toggles. Values arrive from a control surface as queued events and
// are applied by the render loop before each frame reads them.
package controls

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned when a value lies outside a control's range.
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnknownField is returned for a body/field pair that does not exist,
	// such as the camera's scale.
	ErrUnknownField = errors.New("unknown field")
	// ErrAlreadyInitialized is returned when a field's initial position is
	// set twice.
	ErrAlreadyInitialized = errors.New("initial position already set")
	// ErrUnknownFlag is returned for an overlay flag outside the fixed set.
	ErrUnknownFlag = errors.New("unknown overlay flag")
)

// Body identifies one of the two controlled rigid bodies.
type Body int

const (
	Camera Body = iota
	Cube

	bodyCount
)

// Bodies lists every controlled body.
func Bodies() []Body {
	return []Body{Camera, Cube}
}

func (b Body) String() string {
	switch b {
	case Camera:
		return "camera"
	case Cube:
		return "cube"
	}
	return fmt.Sprintf("Body(%d)", int(b))
}

// Panel is the name of the settings panel that hosts the body's controls.
func (b Body) Panel() string {
	return b.String() + " settings"
}

func (b Body) valid() bool {
	return b >= 0 && b < bodyCount
}

// Field is one transform parameter of a body.
type Field int

const (
	TranslationX Field = iota
	TranslationY
	TranslationZ
	Roll
	Pitch
	Yaw
	Scale

	fieldCount
)

func (f Field) String() string {
	switch f {
	case TranslationX:
		return "X"
	case TranslationY:
		return "Y"
	case TranslationZ:
		return "Z"
	case Roll:
		return "Roll"
	case Pitch:
		return "Pitch"
	case Yaw:
		return "Yaw"
	case Scale:
		return "Scale"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Range is an inclusive integer interval stepped by 1.
type Range struct {
	Min, Max int
}

// Contains reports whether v lies in the range.
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp pins v into the range.
func (r Range) Clamp(v int) int {
	return max(r.Min, min(r.Max, v))
}

// Span returns the number of steps from Min to Max.
func (r Range) Span() int {
	return r.Max - r.Min
}

// Control ranges. Translation is in millimetres, rotation in tenths of a
// degree and scale is a dimensionless multiplier.
var (
	TranslationRange = Range{0, 20000}
	RotationRange    = Range{0, 3600}
	ScaleRange       = Range{1, 10}
	ToggleRange      = Range{0, 1}
)

// FieldRange returns the declared range of f.
func FieldRange(f Field) Range {
	switch f {
	case TranslationX, TranslationY, TranslationZ:
		return TranslationRange
	case Roll, Pitch, Yaw:
		return RotationRange
	case Scale:
		return ScaleRange
	}
	return Range{}
}

// Fields lists the fields a body exposes: six for the camera, seven for the
// cube.
func Fields(b Body) []Field {
	fields := []Field{TranslationX, TranslationY, TranslationZ, Roll, Pitch, Yaw}
	if b == Cube {
		fields = append(fields, Scale)
	}
	return fields
}

// HasField reports whether b exposes f.
func HasField(b Body, f Field) bool {
	if !b.valid() || f < 0 || f >= fieldCount {
		return false
	}
	return f != Scale || b == Cube
}

func checkField(b Body, f Field) error {
	if !HasField(b, f) {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, b, f)
	}
	return nil
}
