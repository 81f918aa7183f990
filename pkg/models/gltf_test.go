package models

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/taigrr/cubecam/pkg/math3d"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestBuildDocument(t *testing.T) {
	cube := NewCube(1)
	colors := make([]color.RGBA, len(cube.Planes))
	for i := range colors {
		colors[i] = color.RGBA{R: uint8(40 * i), G: 10, B: 20, A: 255}
	}

	doc := BuildDocument(ExportBody{
		Mesh:        cube,
		Transform:   math3d.Translate(math3d.V3(1, 2, 3)).Mul(math3d.ScaleUniform(2)),
		PlaneColors: colors,
	}, &ExportCamera{Transform: math3d.Identity(), FOV: math.Pi / 3, Aspect: 1.5, Near: 0.1, Far: 100})

	if len(doc.Meshes) != 1 || len(doc.Meshes[0].Primitives) != 6 {
		t.Fatalf("want 1 mesh with 6 primitives, got %d meshes", len(doc.Meshes))
	}
	if len(doc.Materials) != 6 {
		t.Errorf("materials = %d, want 6", len(doc.Materials))
	}
	if len(doc.Nodes) != 2 || len(doc.Cameras) != 1 {
		t.Fatalf("nodes = %d cameras = %d, want 2 and 1", len(doc.Nodes), len(doc.Cameras))
	}

	body := doc.Nodes[0]
	if body.Translation != [3]float64{1, 2, 3} {
		t.Errorf("translation = %v", body.Translation)
	}
	if math.Abs(body.Scale[0]-2) > 1e-12 {
		t.Errorf("scale = %v, want 2", body.Scale)
	}
	if got := doc.Materials[3].PBRMetallicRoughness.BaseColorFactor[0]; math.Abs(got-120.0/255) > 1e-12 {
		t.Errorf("plane 3 red factor = %v", got)
	}
}

func TestExportThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.glb")
	cube := NewCube(2)

	if err := ExportGLB(path, ExportBody{Mesh: cube, Transform: math3d.Identity()}, nil); err != nil {
		t.Fatalf("ExportGLB: %v", err)
	}

	loaded, err := LoadGLB(path)
	if err != nil {
		t.Fatalf("LoadGLB: %v", err)
	}
	if loaded.TriangleCount() != 12 {
		t.Errorf("triangles = %d, want 12", loaded.TriangleCount())
	}
	if !loaded.BoundsMin.ApproxEqual(math3d.V3(-1, -1, -1), 1e-6) ||
		!loaded.BoundsMax.ApproxEqual(math3d.V3(1, 1, 1), 1e-6) {
		t.Errorf("bounds = %v..%v", loaded.BoundsMin, loaded.BoundsMax)
	}

	// Winding survives the round trip: every normal points away from the centre.
	for i := range loaded.Faces {
		f := loaded.Faces[i]
		c := loaded.Vertices[f.V[0]].Add(loaded.Vertices[f.V[1]]).Add(loaded.Vertices[f.V[2]]).Scale(1.0 / 3)
		if loaded.Planes[f.Plane].Normal.Dot(c) <= 0 {
			t.Errorf("face %d normal %v points inward", i, loaded.Planes[f.Plane].Normal)
		}
	}
}
