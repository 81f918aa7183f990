// Package models provides the body geometry the viewer draws: a triangle mesh
// whose faces are grouped into planes, plus GLB import and export.
package models

import (
	"github.com/taigrr/cubecam/pkg/math3d"
)

// Mesh is a triangle mesh. Faces are grouped into planes; every face of a
// plane shares its normal and base color.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face
	Planes   []Plane

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face is a triangle referencing Mesh.Vertices, wound counter-clockwise when
// seen from outside.
type Face struct {
	V     [3]int
	Plane int
}

// Plane is a flat group of faces.
type Plane struct {
	Name   string
	Normal math3d.Vec3 // unit, model space
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// NewCube builds an axis-aligned cube of the given edge length centred on
// the origin, one plane per side.
func NewCube(edge float64) *Mesh {
	h := edge / 2
	m := NewMesh("cube")
	m.Vertices = []math3d.Vec3{
		math3d.V3(-h, -h, -h), // 0
		math3d.V3(h, -h, -h),  // 1
		math3d.V3(h, h, -h),   // 2
		math3d.V3(-h, h, -h),  // 3
		math3d.V3(-h, -h, h),  // 4
		math3d.V3(h, -h, h),   // 5
		math3d.V3(h, h, h),    // 6
		math3d.V3(-h, h, h),   // 7
	}

	sides := []struct {
		name   string
		normal math3d.Vec3
		quad   [4]int // counter-clockwise from outside
	}{
		{"front", math3d.V3(0, 0, 1), [4]int{4, 5, 6, 7}},
		{"back", math3d.V3(0, 0, -1), [4]int{1, 0, 3, 2}},
		{"right", math3d.V3(1, 0, 0), [4]int{5, 1, 2, 6}},
		{"left", math3d.V3(-1, 0, 0), [4]int{0, 4, 7, 3}},
		{"top", math3d.V3(0, 1, 0), [4]int{7, 6, 2, 3}},
		{"bottom", math3d.V3(0, -1, 0), [4]int{0, 1, 5, 4}},
	}

	for i, s := range sides {
		m.Planes = append(m.Planes, Plane{Name: s.name, Normal: s.normal})
		m.Faces = append(m.Faces,
			Face{V: [3]int{s.quad[0], s.quad[1], s.quad[2]}, Plane: i},
			Face{V: [3]int{s.quad[0], s.quad[2], s.quad[3]}, Plane: i},
		)
	}
	m.CalculateBounds()
	return m
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the centre of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the bounding box dimensions.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// FaceNormal returns the geometric normal of face i from its winding.
func (m *Mesh) FaceNormal(i int) math3d.Vec3 {
	f := m.Faces[i]
	v0, v1, v2 := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
	return v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
}

// PlaneCentroids returns the average vertex position of each plane.
func (m *Mesh) PlaneCentroids() []math3d.Vec3 {
	sums := make([]math3d.Vec3, len(m.Planes))
	counts := make([]int, len(m.Planes))
	seen := make([]map[int]bool, len(m.Planes))
	for _, f := range m.Faces {
		if seen[f.Plane] == nil {
			seen[f.Plane] = make(map[int]bool)
		}
		for _, vi := range f.V {
			if seen[f.Plane][vi] {
				continue
			}
			seen[f.Plane][vi] = true
			sums[f.Plane] = sums[f.Plane].Add(m.Vertices[vi])
			counts[f.Plane]++
		}
	}
	for i := range sums {
		if counts[i] > 0 {
			sums[i] = sums[i].Scale(1 / float64(counts[i]))
		}
	}
	return sums
}

// Normalize recentres the mesh on the origin and scales it so its largest
// dimension equals size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	ext := m.Size()
	maxDim := max(ext.X, ext.Y, ext.Z)
	if maxDim == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(size / maxDim).Mul(math3d.Translate(m.Center().Negate())))
}

// Transform applies mat to every vertex and plane normal. mat must not
// shear or scale non-uniformly.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v)
	}
	for i, p := range m.Planes {
		m.Planes[i].Normal = mat.MulVec3Dir(p.Normal).Normalize()
	}
	m.CalculateBounds()
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Planes:    make([]Plane, len(m.Planes)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	copy(c.Planes, m.Planes)
	return c
}
