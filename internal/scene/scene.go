// Package scene turns the parameter store into world-space geometry and
// draws it: shaded planes, normal lines and vertex markers.
package scene

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/cubecam/pkg/controls"
	"github.com/taigrr/cubecam/pkg/math3d"
	"github.com/taigrr/cubecam/pkg/models"
	"github.com/taigrr/cubecam/pkg/palette"
	"github.com/taigrr/cubecam/pkg/render"
	"github.com/taigrr/cubecam/pkg/shading"
)

// Overlay colors.
var (
	NormalColor = render.RGB(255, 215, 0)
	PointColor  = render.RGB(255, 255, 255)
)

// Snapshot is an immutable copy of every parameter the frame reads.
type Snapshot struct {
	Camera   controls.Pose
	Cube     controls.Pose
	Overlays controls.Overlays
}

// Capture reads all 13 fields and the 3 flags.
func Capture(store *controls.Store, overlays *controls.OverlayToggleSet) Snapshot {
	return Snapshot{
		Camera:   store.Pose(controls.Camera),
		Cube:     store.Pose(controls.Cube),
		Overlays: overlays.Snapshot(),
	}
}

// Options configures a Scene.
type Options struct {
	OriginMM float64 // engineering coordinate of the world origin on every axis
	Light    shading.Light
	Colors   []color.RGBA // base color per plane of the mesh
}

// Scene owns the body mesh in model space and resolves snapshots into frames.
//
// Engineering millimetres map to world metres as (mm - OriginMM) / 1000 on
// each axis, Y up. The camera's neutral orientation looks from its initial
// position at the world origin; its roll, pitch and yaw sliders then add
// their offset from the initial slider values.
type Scene struct {
	mesh     *models.Mesh
	opts     Options
	log      *zap.Logger
	neutral  [2]float64 // pitch, yaw in radians
	initial  controls.Pose
	centroid []math3d.Vec3
}

// New creates a scene for mesh. initialCamera is the camera pose the
// neutral orientation is computed from.
func New(mesh *models.Mesh, initialCamera controls.Pose, opts Options, log *zap.Logger) (*Scene, error) {
	if len(opts.Colors) < len(mesh.Planes) {
		return nil, fmt.Errorf("%d colors for %d planes", len(opts.Colors), len(mesh.Planes))
	}
	if opts.Light.Direction.IsZero() {
		return nil, shading.ErrDegenerateLight
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		mesh:     mesh,
		opts:     opts,
		log:      log,
		initial:  initialCamera,
		centroid: mesh.PlaneCentroids(),
	}

	rig := render.NewCamera()
	rig.SetPosition(s.ToWorld(initialCamera.Translation))
	if !rig.Position.IsZero() {
		rig.LookAt(math3d.Zero3())
	}
	s.neutral = [2]float64{rig.Pitch, rig.Yaw}
	return s, nil
}

// Mesh returns the model-space mesh.
func (s *Scene) Mesh() *models.Mesh {
	return s.mesh
}

// ToWorld converts an engineering position in millimetres to world metres.
func (s *Scene) ToWorld(mm math3d.Vec3) math3d.Vec3 {
	o := s.opts.OriginMM
	return mm.Sub(math3d.V3(o, o, o)).Scale(0.001)
}

// ModelMatrix places the body: scale, then roll/pitch/yaw, then translate.
func (s *Scene) ModelMatrix(p controls.Pose) math3d.Mat4 {
	return math3d.Translate(s.ToWorld(p.Translation)).
		Mul(math3d.EulerDegrees(p.Roll, p.Pitch, p.Yaw)).
		Mul(math3d.ScaleUniform(p.Scale))
}

// ApplyCamera positions and orients cam for pose p.
func (s *Scene) ApplyCamera(cam *render.Camera, p controls.Pose) {
	cam.SetPosition(s.ToWorld(p.Translation))
	cam.SetRotation(
		s.neutral[0]+math3d.Radians(p.Pitch-s.initial.Pitch),
		s.neutral[1]+math3d.Radians(p.Yaw-s.initial.Yaw),
		math3d.Radians(p.Roll-s.initial.Roll),
	)
}

// Frame is a snapshot resolved to world space.
type Frame struct {
	Mesh      *models.Mesh // world space
	Centroids []math3d.Vec3
	Colors    []color.RGBA // shaded, per plane
	Overlays  controls.Overlays
	NormalLen float64
}

// Resolve transforms the mesh for snap.Cube and shades every plane.
func (s *Scene) Resolve(snap Snapshot) Frame {
	model := s.ModelMatrix(snap.Cube)
	world := s.mesh.Clone()
	world.Transform(model)

	f := Frame{
		Mesh:      world,
		Centroids: make([]math3d.Vec3, len(s.centroid)),
		Colors:    make([]color.RGBA, len(world.Planes)),
		Overlays:  snap.Overlays,
		NormalLen: 0.5 * snap.Cube.Scale * maxDim(s.mesh),
	}
	for i, c := range s.centroid {
		f.Centroids[i] = model.MulVec3(c)
	}
	for i, p := range world.Planes {
		c, err := s.opts.Light.Shade(s.opts.Colors[i], p.Normal)
		if err != nil {
			s.log.Debug("shade plane", zap.String("plane", p.Name), zap.Error(err))
		}
		f.Colors[i] = c
	}
	return f
}

func maxDim(m *models.Mesh) float64 {
	ext := m.Size()
	return max(ext.X, ext.Y, ext.Z)
}

// Draw renders f through r. Planes are depth tested; normals and points are
// drawn on top.
func (s *Scene) Draw(r *render.Rasterizer, f Frame) (drawn int) {
	m := f.Mesh
	if f.Overlays.Planes {
		for _, face := range m.Faces {
			if r.DrawTriangle(m.Vertices[face.V[0]], m.Vertices[face.V[1]], m.Vertices[face.V[2]], f.Colors[face.Plane]) {
				drawn++
			}
		}
	}
	if f.Overlays.Normals {
		for i, p := range m.Planes {
			r.DrawLine3D(f.Centroids[i], f.Centroids[i].Add(p.Normal.Scale(f.NormalLen)), NormalColor)
		}
	}
	if f.Overlays.Points {
		for _, v := range m.Vertices {
			r.DrawPoint3D(v, 1, PointColor)
		}
	}
	return drawn
}

// Export writes the body at snap.Cube, and the camera at snap.Camera, to a
// GLB file.
func (s *Scene) Export(path string, snap Snapshot, cam *render.Camera) error {
	view := *cam
	s.ApplyCamera(&view, snap.Camera)
	return models.ExportGLB(path,
		models.ExportBody{
			Mesh:        s.mesh,
			Transform:   s.ModelMatrix(snap.Cube),
			PlaneColors: s.opts.Colors,
		},
		&models.ExportCamera{
			Transform: view.WorldMatrix(),
			FOV:       view.FOV,
			Aspect:    view.AspectRatio,
			Near:      view.Near,
			Far:       view.Far,
		},
	)
}

// PlaneColors picks a base color for each of n planes from names, cycling
// through the list. "random" (or an empty list) draws from the palette with
// rnd, or the package generator when rnd is nil.
func PlaneColors(n int, names []string, rnd *rand.Rand) ([]color.RGBA, error) {
	out := make([]color.RGBA, n)
	for i := range out {
		name := "random"
		if len(names) > 0 {
			name = names[i%len(names)]
		}
		if strings.EqualFold(name, "random") {
			if rnd == nil {
				out[i] = palette.RandomColor().Color
			} else {
				out[i] = palette.RandomColorFrom(rnd).Color
			}
			continue
		}
		c, err := palette.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}
