// Package shading derives a surface's displayed color from its base color, a
// light direction and the surface normal.
//
// Lighting is a single directional light: the intensity is the negated cosine
// between the light's travel direction and the surface normal, so a face
// looking straight back at the light gets 1. Lightness is then scaled in HLS
// space, which keeps hue and saturation of the base color.
package shading

import (
	"errors"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/taigrr/cubecam/pkg/math3d"
)

// ErrDegenerateLight is returned when the light direction has zero length.
var ErrDegenerateLight = errors.New("light direction has zero length")

// Intensity returns -(normalize(lightDir) · normal).
//
// The result is signed and unclamped. normal is used as given; callers
// pass unit normals. A zero lightDir yields 0 and ErrDegenerateLight.
func Intensity(lightDir, normal math3d.Vec3) (float64, error) {
	if lightDir.IsZero() {
		return 0, ErrDegenerateLight
	}
	return -lightDir.Normalize().Dot(normal), nil
}

// AdjustColorIntensity scales the HLS lightness of base by intensity.
//
// Intensity is not clamped: values above 1 overshoot lightness and values
// below 0 go negative. The conversion back to RGB truncates each channel to
// an integer and pins it into [0, 255]. Alpha is carried over from base.
func AdjustColorIntensity(base color.RGBA, intensity float64) color.RGBA {
	c := colorful.Color{
		R: float64(base.R) / 255,
		G: float64(base.G) / 255,
		B: float64(base.B) / 255,
	}
	h, s, l := c.Hsl()
	out := colorful.Hsl(h, s, l*intensity)

	return color.RGBA{
		R: truncChannel(out.R),
		G: truncChannel(out.G),
		B: truncChannel(out.B),
		A: base.A,
	}
}

// truncChannel maps [0,1] to [0,255] by truncation.
func truncChannel(v float64) uint8 {
	n := math.Trunc(v * 255)
	switch {
	case math.IsNaN(n), n < 0:
		return 0
	case n > 255:
		return 255
	}
	return uint8(n)
}

// Clamp01 pins an intensity into the display range.
func Clamp01(intensity float64) float64 {
	return math.Max(0, math.Min(1, intensity))
}

// Shade computes the displayed color of a surface: intensity clamped into
// [0, 1], then applied to base.
func Shade(base color.RGBA, lightDir, normal math3d.Vec3) (color.RGBA, error) {
	i, err := Intensity(lightDir, normal)
	if err != nil {
		return base, err
	}
	return AdjustColorIntensity(base, Clamp01(i)), nil
}

// Light is a directional light with an ambient floor. Ambient lifts faces
// turned away from the light so they stay visible; it is 0 for pure
// Intensity shading.
type Light struct {
	Direction math3d.Vec3
	Ambient   float64
}

// NewLight validates dir and returns a light with the given ambient level.
func NewLight(dir math3d.Vec3, ambient float64) (Light, error) {
	if dir.IsZero() {
		return Light{}, ErrDegenerateLight
	}
	return Light{Direction: dir, Ambient: Clamp01(ambient)}, nil
}

// Shade is the package-level Shade with the ambient floor mixed in:
// ambient + (1-ambient)*clamp(intensity).
func (l Light) Shade(base color.RGBA, normal math3d.Vec3) (color.RGBA, error) {
	i, err := Intensity(l.Direction, normal)
	if err != nil {
		return base, err
	}
	return AdjustColorIntensity(base, l.Ambient+(1-l.Ambient)*Clamp01(i)), nil
}
