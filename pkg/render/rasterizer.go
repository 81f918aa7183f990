package render

import (
	"math"

	"github.com/taigrr/cubecam/pkg/math3d"
)

// Rasterizer draws world-space primitives through a camera into a
// framebuffer, with a depth buffer for filled triangles.
type Rasterizer struct {
	camera  *Camera
	fb      *Framebuffer
	zbuffer []float64

	// CullBackfaces skips triangles whose counter-clockwise side faces away
	// from the camera.
	CullBackfaces bool
}

// NewRasterizer creates a rasterizer with backface culling on.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{camera: camera, fb: fb, CullBackfaces: true}
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets the depth buffer; call once per frame.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	// copy-doubling fill
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

type screenPoint struct {
	X, Y, Z float64
}

func (r *Rasterizer) project(p math3d.Vec3) (screenPoint, bool) {
	x, y, z, ok := r.camera.Project(p, r.Width(), r.Height())
	return screenPoint{x, y, z}, ok
}

// DrawTriangle fills a world-space triangle with a flat color. It returns
// false when the triangle was culled or lies partly behind the camera.
func (r *Rasterizer) DrawTriangle(v0, v1, v2 math3d.Vec3, c Color) bool {
	var sv [3]screenPoint
	for i, v := range [3]math3d.Vec3{v0, v1, v2} {
		p, ok := r.project(v)
		if !ok {
			return false
		}
		sv[i] = p
	}

	// Screen Y points down, so a counter-clockwise front face has a
	// negative screen-space cross product.
	cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if cross == 0 || (r.CullBackfaces && cross > 0) {
		return false
	}

	minX := int(math.Max(0, math.Floor(min(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max(sv[0].Y, sv[1].Y, sv[2].Y))))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				float64(x)+0.5, float64(y)+0.5,
			)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z
			i := y*r.fb.Width + x
			if z >= r.zbuffer[i] {
				continue
			}
			r.zbuffer[i] = z
			r.fb.SetPixel(x, y, c)
		}
	}
	return true
}

// DrawLine3D draws a world-space segment on top of the scene, without a
// depth test. Segments with an end behind the camera are skipped.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, c Color) {
	pa, okA := r.project(a)
	pb, okB := r.project(b)
	if !okA || !okB {
		return
	}
	r.fb.DrawLine(int(pa.X), int(pa.Y), int(pb.X), int(pb.Y), c)
}

// DrawPoint3D draws a square marker of the given pixel radius centred on a
// world-space point.
func (r *Rasterizer) DrawPoint3D(p math3d.Vec3, radius int, c Color) {
	sp, ok := r.project(p)
	if !ok {
		return
	}
	x, y := int(sp.X), int(sp.Y)
	r.fb.DrawRect(x-radius, y-radius, 2*radius+1, 2*radius+1, c)
}

// barycentric returns the weights of (px, py) against the triangle
// (x0,y0) (x1,y1) (x2,y2). A negative weight means the point is outside.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	d := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if math.Abs(d) < 1e-10 {
		return math3d.V3(-1, -1, -1)
	}
	w0 := ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) / d
	w1 := ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) / d
	return math3d.V3(w0, w1, 1-w0-w1)
}
