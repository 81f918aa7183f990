package palette

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestRegistrySize(t *testing.T) {
	if Len() < 140 {
		t.Errorf("palette has %d colors, want at least 140", Len())
	}
	if len(Names()) != Len() || len(All()) != Len() {
		t.Error("Names/All length disagrees with Len")
	}
}

func TestNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range Names() {
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
	}{
		{"red", 255, 0, 0},
		{"RED", 255, 0, 0},
		{"LIGHT_SEA_GREEN", 32, 178, 170},
		{"light-sea-green", 32, 178, 170},
		{"Cornflower Blue", 100, 149, 237},
		{"black", 0, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Lookup(tc.name)
			if err != nil {
				t.Fatalf("Lookup(%q): %v", tc.name, err)
			}
			if c.R != tc.r || c.G != tc.g || c.B != tc.b || c.A != 255 {
				t.Errorf("Lookup(%q) = %v, want (%d, %d, %d, 255)", tc.name, c, tc.r, tc.g, tc.b)
			}
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	c, err := Lookup("not-a-color")
	if !errors.Is(err, ErrColorNotFound) {
		t.Fatalf("expected ErrColorNotFound, got %v", err)
	}
	if c.A != 0 {
		t.Errorf("unknown lookup returned a color: %v", c)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Color.R ^= 0xff
	if got, _ := Lookup(all[0].Name); got == all[0].Color {
		t.Error("mutating All() result changed the registry")
	}
}

func TestRandomColorCoverage(t *testing.T) {
	seen := make(map[string]int)
	for range 10000 {
		c := RandomColor()
		if !Contains(c) {
			t.Fatalf("RandomColor returned unregistered value %+v", c)
		}
		seen[c.Name]++
	}

	for _, name := range Names() {
		if seen[name] == 0 {
			t.Errorf("color %q never selected in 10000 draws", name)
		}
	}
}

func TestRandomColorFromDeterministic(t *testing.T) {
	a := rand.New(rand.NewPCG(1, 2))
	b := rand.New(rand.NewPCG(1, 2))
	for range 50 {
		if RandomColorFrom(a) != RandomColorFrom(b) {
			t.Fatal("same seed produced different colors")
		}
	}
}
