package models

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/cubecam/pkg/math3d"
)

// LoadGLB loads every triangle primitive of a GLB/glTF file into one mesh.
// Each triangle becomes its own plane with its geometric normal. Node
// transforms are ignored.
func LoadGLB(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if err := appendPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, pi, err)
			}
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%s: no triangles", path)
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func appendPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
		// lines and points carry no surfaces
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	base := len(mesh.Vertices)
	for _, p := range positions {
		mesh.Vertices = append(mesh.Vertices, math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])))
	}

	for i := 0; i+2 < len(indices); i += 3 {
		f := Face{
			V:     [3]int{base + int(indices[i]), base + int(indices[i+1]), base + int(indices[i+2])},
			Plane: len(mesh.Planes),
		}
		for _, vi := range f.V {
			if vi >= len(mesh.Vertices) {
				return fmt.Errorf("index %d out of range (%d vertices)", vi, len(mesh.Vertices))
			}
		}
		mesh.Faces = append(mesh.Faces, f)
		mesh.Planes = append(mesh.Planes, Plane{
			Name:   fmt.Sprintf("tri%d", len(mesh.Planes)),
			Normal: mesh.FaceNormal(len(mesh.Faces) - 1),
		})
	}
	return nil
}

// ExportBody is a mesh placed in the world with one base color per plane.
type ExportBody struct {
	Mesh        *Mesh
	Transform   math3d.Mat4 // model to world; rotation and uniform scale only
	PlaneColors []color.RGBA
}

// ExportCamera places a perspective camera in the exported scene.
type ExportCamera struct {
	Transform math3d.Mat4 // camera to world
	FOV       float64     // vertical, radians
	Aspect    float64
	Near, Far float64
}

// BuildDocument converts a body (and optionally a camera) into a glTF
// document with one primitive and material per plane.
func BuildDocument(body ExportBody, cam *ExportCamera) *gltf.Document {
	doc := gltf.NewDocument()
	m := body.Mesh

	positions := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	}
	posAccessor := modeler.WritePosition(doc, positions)

	perPlane := make([][]uint32, len(m.Planes))
	for _, f := range m.Faces {
		perPlane[f.Plane] = append(perPlane[f.Plane], uint32(f.V[0]), uint32(f.V[1]), uint32(f.V[2]))
	}

	gm := &gltf.Mesh{Name: m.Name}
	for pi, idx := range perPlane {
		if len(idx) == 0 {
			continue
		}
		c := color.RGBA{R: 200, G: 200, B: 200, A: 255}
		if pi < len(body.PlaneColors) {
			c = body.PlaneColors[pi]
		}
		doc.Materials = append(doc.Materials, &gltf.Material{
			Name: m.Planes[pi].Name,
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, 1},
				MetallicFactor:  gltf.Float(0),
			},
		})
		gm.Primitives = append(gm.Primitives, &gltf.Primitive{
			Mode:       gltf.PrimitiveTriangles,
			Indices:    gltf.Index(modeler.WriteIndices(doc, idx)),
			Attributes: map[string]int{gltf.POSITION: posAccessor},
			Material:   gltf.Index(len(doc.Materials) - 1),
		})
	}
	doc.Meshes = append(doc.Meshes, gm)

	doc.Nodes = append(doc.Nodes, trsNode(m.Name, body.Transform))
	doc.Nodes[0].Mesh = gltf.Index(0)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	if cam != nil {
		doc.Cameras = append(doc.Cameras, &gltf.Camera{
			Name: "camera",
			Perspective: &gltf.Perspective{
				Yfov:        cam.FOV,
				AspectRatio: gltf.Float(cam.Aspect),
				Znear:       cam.Near,
				Zfar:        gltf.Float(cam.Far),
			},
		})
		node := trsNode("camera", cam.Transform)
		node.Camera = gltf.Index(0)
		doc.Nodes = append(doc.Nodes, node)
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	}
	return doc
}

func trsNode(name string, t math3d.Mat4) *gltf.Node {
	tr := t.Translation()
	s := math3d.V3(t[0], t[1], t[2]).Len()
	return &gltf.Node{
		Name:        name,
		Translation: [3]float64{tr.X, tr.Y, tr.Z},
		Rotation:    t.Quaternion(),
		Scale:       [3]float64{s, s, s},
	}
}

// ExportGLB writes BuildDocument's output as a binary glTF file.
func ExportGLB(path string, body ExportBody, cam *ExportCamera) error {
	if err := gltf.SaveBinary(BuildDocument(body, cam), path); err != nil {
		return fmt.Errorf("save glb: %w", err)
	}
	return nil
}
