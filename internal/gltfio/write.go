package gltfio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/philipparndt/meshcombine/internal/scene"
)

// Exporter accumulates objects into one glTF document. Meshes and materials
// shared between objects are written once.
type Exporter struct {
	doc       *gltf.Document
	meshes    map[meshKey]uint32
	materials map[*scene.Material]uint32
}

// meshKey identifies a written glTF mesh. glTF binds materials to mesh
// primitives, so the same mesh under different materials is written twice.
type meshKey struct {
	mesh  *scene.Mesh
	slots string
}

func NewExporter() *Exporter {
	return &Exporter{
		doc:       gltf.NewDocument(),
		meshes:    map[meshKey]uint32{},
		materials: map[*scene.Material]uint32{},
	}
}

// SetSceneName names the document's default scene.
func (e *Exporter) SetSceneName(name string) {
	e.doc.Scenes[0].Name = name
}

// AddRoot writes obj and its subtree and lists obj as a scene root.
func (e *Exporter) AddRoot(obj *scene.Object) {
	idx := e.addNode(obj)
	e.doc.Scenes[0].Nodes = append(e.doc.Scenes[0].Nodes, idx)
}

// Document returns the accumulated document.
func (e *Exporter) Document() *gltf.Document {
	return e.doc
}

func (e *Exporter) addNode(obj *scene.Object) uint32 {
	q := obj.Transform.Rotation
	node := &gltf.Node{
		Name:        obj.Name,
		Translation: obj.Transform.Position,
		Rotation:    [4]float32{q.V[0], q.V[1], q.V[2], q.W},
		Scale:       obj.Transform.Scale,
		Matrix:      gltf.DefaultMatrix,
	}
	if !obj.Active {
		node.Extras = map[string]interface{}{ActiveExtra: false}
	}
	if obj.Mesh != nil && obj.Mesh.VertexCount() > 0 {
		var slots []*scene.Material
		if obj.Renderer != nil {
			slots = obj.Renderer.Materials
		}
		node.Mesh = gltf.Index(e.addMesh(obj.Mesh, slots))
	}

	idx := uint32(len(e.doc.Nodes))
	e.doc.Nodes = append(e.doc.Nodes, node)

	for _, c := range obj.Children() {
		node.Children = append(node.Children, e.addNode(c))
	}
	return idx
}

func (e *Exporter) addMesh(m *scene.Mesh, slots []*scene.Material) uint32 {
	key := meshKey{mesh: m, slots: slotKey(slots)}
	if idx, ok := e.meshes[key]; ok {
		return idx
	}

	attributes := map[string]uint32{
		gltf.POSITION: modeler.WritePosition(e.doc, m.Positions),
	}
	if m.HasNormals() {
		attributes[gltf.NORMAL] = modeler.WriteNormal(e.doc, m.Normals)
	}
	if m.HasUV0() {
		attributes[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(e.doc, m.UV0)
	}
	if m.HasUV1() {
		attributes[gltf.TEXCOORD_1] = modeler.WriteTextureCoord(e.doc, m.UV1)
	}

	gm := &gltf.Mesh{Name: m.Name}
	for i, sm := range m.SubMeshes {
		if len(sm.Indices) == 0 {
			continue
		}
		p := &gltf.Primitive{
			Indices:    gltf.Index(e.writeIndices(sm.Indices, m.IndexFormat)),
			Attributes: attributes,
		}
		if i < len(slots) && slots[i] != nil {
			p.Material = gltf.Index(e.addMaterial(slots[i]))
		}
		gm.Primitives = append(gm.Primitives, p)
	}

	idx := uint32(len(e.doc.Meshes))
	e.doc.Meshes = append(e.doc.Meshes, gm)
	e.meshes[key] = idx
	return idx
}

func (e *Exporter) writeIndices(indices []uint32, format scene.IndexFormat) uint32 {
	if format == scene.IndexFormat16 {
		narrow := make([]uint16, len(indices))
		for i, idx := range indices {
			narrow[i] = uint16(idx)
		}
		return modeler.WriteIndices(e.doc, narrow)
	}
	return modeler.WriteIndices(e.doc, indices)
}

func (e *Exporter) addMaterial(m *scene.Material) uint32 {
	if idx, ok := e.materials[m]; ok {
		return idx
	}
	color := new([4]float32)
	*color = m.BaseColor

	idx := uint32(len(e.doc.Materials))
	e.doc.Materials = append(e.doc.Materials, &gltf.Material{
		Name:        m.Name,
		DoubleSided: m.DoubleSided,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: color,
		},
	})
	e.materials[m] = idx
	return idx
}

func slotKey(slots []*scene.Material) string {
	var b strings.Builder
	for _, m := range slots {
		fmt.Fprintf(&b, "%p;", m)
	}
	return b.String()
}

// Encode writes doc as binary glTF.
func Encode(w io.Writer, doc *gltf.Document) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(doc)
}

// Save writes doc to path. A .gltf extension selects the JSON form with
// embedded buffers, anything else binary glTF.
func Save(doc *gltf.Document, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".gltf") {
		for _, b := range doc.Buffers {
			if b.URI == "" {
				b.EmbeddedResource()
			}
		}
		return gltf.Save(doc, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	if err := Encode(f, doc); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	return f.Close()
}

// ObjectDocument returns a document holding root's hierarchy.
func ObjectDocument(root *scene.Object) *gltf.Document {
	e := NewExporter()
	e.SetSceneName(root.Name)
	e.AddRoot(root)
	return e.Document()
}

// MeshDocument returns a document with a single node carrying m.
func MeshDocument(m *scene.Mesh) *gltf.Document {
	obj := scene.NewObject(m.Name)
	obj.Mesh = m
	return ObjectDocument(obj)
}

// SceneDocument returns a document holding every root of s.
func SceneDocument(s *scene.Scene) *gltf.Document {
	e := NewExporter()
	e.SetSceneName(s.Name)
	for _, r := range s.Roots {
		e.AddRoot(r)
	}
	return e.Document()
}
