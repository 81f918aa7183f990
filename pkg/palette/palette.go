// Package palette is the read-only registry of named base colors used to paint
// scene surfaces.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"
)

// ErrColorNotFound is returned by Lookup for a name outside the registry.
var ErrColorNotFound = errors.New("color not found")

// NamedColor is a registry entry.
type NamedColor struct {
	Name  string
	Color color.RGBA
}

// byName indexes webColors by canonical name. Built once at init and never
// written afterwards, so it is safe to share between goroutines.
var byName = func() map[string]int {
	m := make(map[string]int, len(webColors))
	for i, c := range webColors {
		m[c.Name] = i
	}
	return m
}()

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// canonical folds the spellings users type ("LIGHT_SEA_GREEN",
// "light-sea-green", "Light Sea Green") onto the registry key.
func canonical(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)
}

// Len returns the number of registered colors.
func Len() int {
	return len(webColors)
}

// Names returns the registered names in registry order.
func Names() []string {
	names := make([]string, len(webColors))
	for i, c := range webColors {
		names[i] = c.Name
	}
	return names
}

// All returns a copy of every registry entry.
func All() []NamedColor {
	out := make([]NamedColor, len(webColors))
	copy(out, webColors[:])
	return out
}

// Lookup resolves a color by name.
func Lookup(name string) (color.RGBA, error) {
	i, ok := byName[canonical(name)]
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrColorNotFound, name)
	}
	return webColors[i].Color, nil
}

// Contains reports whether c is one of the registered color values.
func Contains(c NamedColor) bool {
	i, ok := byName[c.Name]
	return ok && webColors[i].Color == c.Color
}

// RandomColor picks a registered color uniformly at random.
func RandomColor() NamedColor {
	return webColors[rand.IntN(len(webColors))]
}

// RandomColorFrom is RandomColor driven by the caller's generator.
func RandomColorFrom(r *rand.Rand) NamedColor {
	return webColors[r.IntN(len(webColors))]
}
