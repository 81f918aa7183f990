package shading

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/cubecam/pkg/math3d"
	"github.com/taigrr/cubecam/pkg/palette"
)

func TestIntensity(t *testing.T) {
	tests := []struct {
		name          string
		light, normal math3d.Vec3
		want          float64
	}{
		{"straight down onto upward normal", math3d.V3(0, 0, -1), math3d.V3(0, 0, 1), 1},
		{"light from behind", math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), -1},
		{"grazing", math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), 0},
		{"unnormalized light", math3d.V3(0, -10, 0), math3d.V3(0, 1, 0), 1},
		{"45 degrees", math3d.V3(0, -1, -1), math3d.V3(0, 0, 1), math.Sqrt2 / 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Intensity(tc.light, tc.normal)
			if err != nil {
				t.Fatalf("Intensity: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Intensity(%v, %v) = %v, want %v", tc.light, tc.normal, got, tc.want)
			}
		})
	}
}

func TestIntensityZeroLight(t *testing.T) {
	got, err := Intensity(math3d.Zero3(), math3d.V3(0, 0, 1))
	if !errors.Is(err, ErrDegenerateLight) {
		t.Fatalf("expected ErrDegenerateLight, got %v", err)
	}
	if got != 0 {
		t.Errorf("degenerate intensity = %v, want 0", got)
	}
}

func TestIntensityScaleInvariant(t *testing.T) {
	light := math3d.V3(0.3, -1, 0.7)
	normals := []math3d.Vec3{
		math3d.V3(0, 1, 0),
		math3d.V3(1, 0, 0),
		math3d.V3(0.6, 0.8, 0),
		math3d.V3(0, 0, -1),
	}

	for _, n := range normals {
		base, _ := Intensity(light, n)
		for _, k := range []float64{1e-3, 0.5, 2, 1e4} {
			got, err := Intensity(light.Scale(k), n)
			if err != nil {
				t.Fatalf("Intensity: %v", err)
			}
			if math.Abs(got-base) > 1e-12 {
				t.Errorf("Intensity(%v*L, %v) = %v, want %v", k, n, got, base)
			}
		}
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func TestAdjustColorIntensityRoundTrip(t *testing.T) {
	for _, nc := range palette.All() {
		got := AdjustColorIntensity(nc.Color, 1.0)
		if absDiff(got.R, nc.Color.R) > 1 || absDiff(got.G, nc.Color.G) > 1 || absDiff(got.B, nc.Color.B) > 1 {
			t.Errorf("%s: round trip %v -> %v", nc.Name, nc.Color, got)
		}
	}
}

func TestAdjustColorIntensityZeroIsBlack(t *testing.T) {
	for _, nc := range palette.All() {
		got := AdjustColorIntensity(nc.Color, 0)
		if got.R != 0 || got.G != 0 || got.B != 0 {
			t.Errorf("%s at intensity 0 = %v, want black", nc.Name, got)
		}
	}
}

func TestAdjustColorIntensityMonotonic(t *testing.T) {
	base := color.RGBA{R: 200, G: 80, B: 40, A: 255}
	prev := -1
	for i := 0; i <= 10; i++ {
		c := AdjustColorIntensity(base, float64(i)/10)
		sum := int(c.R) + int(c.G) + int(c.B)
		if sum < prev {
			t.Errorf("intensity %d/10 darker than previous step", i)
		}
		prev = sum
	}
}

func TestAdjustColorIntensityOutOfRange(t *testing.T) {
	gray := color.RGBA{R: 128, G: 128, B: 128, A: 255}

	bright := AdjustColorIntensity(gray, 3)
	if bright != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("overshoot = %v, want white", bright)
	}

	dark := AdjustColorIntensity(gray, -2)
	if dark != (color.RGBA{A: 255}) {
		t.Errorf("negative intensity = %v, want black", dark)
	}
}

func TestAdjustColorIntensityKeepsAlpha(t *testing.T) {
	c := AdjustColorIntensity(color.RGBA{R: 10, G: 20, B: 30, A: 7}, 0.5)
	if c.A != 7 {
		t.Errorf("alpha = %d, want 7", c.A)
	}
}

func TestShade(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	lit, err := Shade(red, math3d.V3(0, 0, -1), math3d.V3(0, 0, 1))
	if err != nil {
		t.Fatalf("Shade: %v", err)
	}
	if lit != red {
		t.Errorf("fully lit = %v, want %v", lit, red)
	}

	// Facing away clamps to 0 rather than going negative.
	away, _ := Shade(red, math3d.V3(0, 0, 1), math3d.V3(0, 0, 1))
	if away != (color.RGBA{A: 255}) {
		t.Errorf("facing away = %v, want black", away)
	}

	if _, err := Shade(red, math3d.Zero3(), math3d.V3(0, 0, 1)); !errors.Is(err, ErrDegenerateLight) {
		t.Errorf("expected ErrDegenerateLight, got %v", err)
	}
}

func TestLightAmbientFloor(t *testing.T) {
	if _, err := NewLight(math3d.Zero3(), 0.2); !errors.Is(err, ErrDegenerateLight) {
		t.Fatalf("expected ErrDegenerateLight, got %v", err)
	}

	l, err := NewLight(math3d.V3(0, -1, 0), 0.25)
	if err != nil {
		t.Fatalf("NewLight: %v", err)
	}
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	// Face turned away still gets the ambient share of lightness.
	c, _ := l.Shade(white, math3d.V3(0, -1, 0))
	want := AdjustColorIntensity(white, 0.25)
	if c != want {
		t.Errorf("ambient-only shade = %v, want %v", c, want)
	}
	if c.R == 0 {
		t.Error("ambient floor produced black")
	}
}
