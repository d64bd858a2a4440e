package gltfio

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/philipparndt/meshcombine/internal/scene"
)

func testMesh(name string) *scene.Mesh {
	m := scene.NewMesh(name)
	m.Positions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	m.Normals = [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	m.UV0 = [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	m.SubMeshes = []scene.SubMesh{{Indices: []uint32{0, 1, 2, 0, 2, 3}}}
	return m
}

func decode(t *testing.T, doc *gltf.Document) *scene.Scene {
	t.Helper()
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	s, err := NewLoader(nil).Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	return s
}

func TestHierarchySurvivesBinaryEncoding(t *testing.T) {
	shared := testMesh("quad")
	brick := scene.NewMaterial("Brick")
	brick.BaseColor = [4]float32{0.5, 0.2, 0.1, 1}

	root := scene.NewObject("House")
	root.Transform.Position = mgl32.Vec3{1, 2, 3}
	root.Transform.Rotation = mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	for _, name := range []string{"a", "b"} {
		child := scene.NewObject(name)
		child.Mesh = shared
		child.Renderer = &scene.Renderer{Materials: []*scene.Material{brick}}
		root.AddChild(child)
	}
	hidden := scene.NewObject("hidden")
	hidden.SetActive(false)
	root.AddChild(hidden)

	doc := ObjectDocument(root)
	if len(doc.Meshes) != 1 || len(doc.Materials) != 1 {
		t.Fatalf("shared mesh/material written %d/%d times", len(doc.Meshes), len(doc.Materials))
	}

	s := decode(t, doc)
	if len(s.Roots) != 1 || s.Name != "House" {
		t.Fatalf("unexpected roots %d, scene name %q", len(s.Roots), s.Name)
	}
	got := s.Roots[0]
	if got.Transform.Position.Sub(root.Transform.Position).Len() > 1e-5 {
		t.Errorf("position = %v", got.Transform.Position)
	}
	if got.Transform.Rotation.Sub(root.Transform.Rotation).Len() > 1e-5 {
		t.Errorf("rotation = %v", got.Transform.Rotation)
	}

	a, b := got.Find("a"), got.Find("b")
	if a == nil || b == nil {
		t.Fatal("children missing")
	}
	if a.Mesh != b.Mesh {
		t.Error("decoded children should share the mesh")
	}
	if a.Renderer.Materials[0] != b.Renderer.Materials[0] {
		t.Error("decoded children should share the material")
	}
	if a.Renderer.Materials[0].Name != "Brick" || a.Renderer.Materials[0].BaseColor != brick.BaseColor {
		t.Errorf("material = %+v", a.Renderer.Materials[0])
	}
	if a.Mesh.VertexCount() != 4 || a.Mesh.IndexCount() != 6 || !a.Mesh.HasNormals() || !a.Mesh.HasUV0() {
		t.Errorf("mesh attributes lost: %d verts, %d indices", a.Mesh.VertexCount(), a.Mesh.IndexCount())
	}
	if got.Find("hidden").Active {
		t.Error("inactive flag lost")
	}
	if !a.Active {
		t.Error("active objects should stay active")
	}
}

func TestSixteenBitIndices(t *testing.T) {
	m := testMesh("narrow")
	m.IndexFormat = scene.IndexFormat16
	doc := MeshDocument(m)

	acr := doc.Accessors[*doc.Meshes[0].Primitives[0].Indices]
	if acr.ComponentType != gltf.ComponentUshort {
		t.Errorf("component type = %v, want unsigned short", acr.ComponentType)
	}

	s := decode(t, doc)
	if got := s.Roots[0].Mesh.Indices(); len(got) != 6 || got[5] != 3 {
		t.Errorf("indices = %v", got)
	}
}

func TestPrimitivesBecomeSubMeshes(t *testing.T) {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	normals := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	pos2 := modeler.WritePosition(doc, [][3]float32{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}})
	idx := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	doc.Materials = []*gltf.Material{{Name: "A"}, {Name: "B"}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "two",
		Primitives: []*gltf.Primitive{
			{Attributes: map[string]uint32{gltf.POSITION: pos, gltf.NORMAL: normals}, Indices: gltf.Index(idx), Material: gltf.Index(0)},
			// no indices, no normals
			{Attributes: map[string]uint32{gltf.POSITION: pos2}, Material: gltf.Index(1)},
		},
	}}
	doc.Nodes = []*gltf.Node{{Name: "n", Mesh: gltf.Index(0), Matrix: gltf.DefaultMatrix, Rotation: [4]float32{0, 0, 0, 1}, Scale: [3]float32{1, 1, 1}}}
	doc.Scenes[0].Nodes = []uint32{0}

	s, err := NewLoader(nil).FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}
	obj := s.Roots[0]
	if len(obj.Mesh.SubMeshes) != 2 {
		t.Fatalf("sub-meshes = %d, want 2", len(obj.Mesh.SubMeshes))
	}
	if got := obj.Mesh.SubMeshes[1].Indices; got[0] != 3 || got[2] != 5 {
		t.Errorf("second sub-mesh indices = %v, want offset by 3", got)
	}
	if len(obj.Renderer.Materials) != 2 || obj.Renderer.Materials[1].Name != "B" {
		t.Errorf("material slots = %v", obj.Renderer.Materials)
	}
	if !obj.Mesh.HasNormals() || obj.Mesh.Normals[4] != ([3]float32{}) {
		t.Error("normals should be zero filled for the primitive without them")
	}
}

func TestNodeMatrixIsDecomposed(t *testing.T) {
	doc := gltf.NewDocument()
	m := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.Scale3D(2, 2, 2))
	doc.Nodes = []*gltf.Node{{Name: "m", Matrix: [16]float32(m)}}
	doc.Scenes[0].Nodes = []uint32{0}

	s, err := NewLoader(nil).FromDocument(doc)
	if err != nil {
		t.Fatalf("FromDocument() error = %v", err)
	}
	tr := s.Roots[0].Transform
	if tr.Position.Sub(mgl32.Vec3{4, 5, 6}).Len() > 1e-5 || tr.Scale.Sub(mgl32.Vec3{2, 2, 2}).Len() > 1e-5 {
		t.Errorf("transform = %+v", tr)
	}
}

func TestFromDocument_Errors(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "loop", Children: []uint32{0}}}
	doc.Scenes[0].Nodes = []uint32{0}
	if _, err := NewLoader(nil).FromDocument(doc); err == nil {
		t.Error("cyclic hierarchy should fail")
	}

	doc = gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "bad", Mesh: gltf.Index(3)}}
	doc.Scenes[0].Nodes = []uint32{0}
	if _, err := NewLoader(nil).FromDocument(doc); err == nil {
		t.Error("missing mesh should fail")
	}
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	root := scene.NewObject("Thing")
	root.Mesh = testMesh("thing")
	root.Renderer = &scene.Renderer{Materials: []*scene.Material{scene.NewMaterial("M")}}

	for _, name := range []string{"thing.glb", "thing.gltf"} {
		path := filepath.Join(dir, name)
		if err := Save(ObjectDocument(root), path); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
		s, err := NewLoader(nil).Open(path)
		if err != nil {
			t.Fatalf("Open(%s) error = %v", name, err)
		}
		if s.Roots[0].Mesh.VertexCount() != 4 {
			t.Errorf("%s: vertex count = %d", name, s.Roots[0].Mesh.VertexCount())
		}
	}
}
