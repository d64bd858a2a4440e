// Package gltfio converts between glTF 2.0 documents and scene hierarchies.
package gltfio

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/geometry"
	"github.com/philipparndt/meshcombine/internal/scene"
)

// ActiveExtra is the node extras key holding an object's active flag.
const ActiveExtra = "active"

// Loader builds scenes from glTF documents. Meshes and materials referenced
// by several nodes are shared between the resulting objects.
type Loader struct {
	log *zap.Logger
}

func NewLoader(log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{log: log}
}

// Open reads a .gltf or .glb file. External buffers are resolved relative to
// the file.
func (l *Loader) Open(path string) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	return l.FromDocument(doc)
}

// Decode reads a self-contained document, typically binary glTF.
func (l *Loader) Decode(r io.Reader) (*scene.Scene, error) {
	doc := &gltf.Document{}
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to read gltf")
	}
	return l.FromDocument(doc)
}

type documentReader struct {
	doc       *gltf.Document
	log       *zap.Logger
	meshes    map[uint32]*meshEntry
	materials map[uint32]*scene.Material
}

type meshEntry struct {
	mesh  *scene.Mesh
	slots []*scene.Material
}

// FromDocument converts the document's default scene. Without scenes every
// node that is nobody's child becomes a root.
func (l *Loader) FromDocument(doc *gltf.Document) (*scene.Scene, error) {
	r := &documentReader{
		doc:       doc,
		log:       l.log,
		meshes:    map[uint32]*meshEntry{},
		materials: map[uint32]*scene.Material{},
	}

	out := &scene.Scene{}
	roots, name := r.rootNodes()
	out.Name = name

	visiting := make(map[uint32]bool)
	for _, idx := range roots {
		obj, err := r.node(idx, visiting)
		if err != nil {
			return nil, err
		}
		out.Add(obj)
	}
	return out, nil
}

func (r *documentReader) rootNodes() ([]uint32, string) {
	if len(r.doc.Scenes) > 0 {
		sceneIdx := uint32(0)
		if r.doc.Scene != nil && int(*r.doc.Scene) < len(r.doc.Scenes) {
			sceneIdx = *r.doc.Scene
		}
		s := r.doc.Scenes[sceneIdx]
		return s.Nodes, s.Name
	}

	isChild := make([]bool, len(r.doc.Nodes))
	for _, n := range r.doc.Nodes {
		for _, c := range n.Children {
			if int(c) < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []uint32
	for i := range r.doc.Nodes {
		if !isChild[i] {
			roots = append(roots, uint32(i))
		}
	}
	return roots, ""
}

func (r *documentReader) node(idx uint32, visiting map[uint32]bool) (*scene.Object, error) {
	if int(idx) >= len(r.doc.Nodes) {
		return nil, fmt.Errorf("node index %d out of range", idx)
	}
	if visiting[idx] {
		return nil, fmt.Errorf("node %d is its own ancestor", idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	n := r.doc.Nodes[idx]
	name := n.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", idx)
	}

	obj := scene.NewObject(name)
	obj.Transform = nodeTransform(n)
	obj.Active = nodeActive(n)

	if n.Mesh != nil {
		entry, err := r.mesh(*n.Mesh)
		if err != nil {
			return nil, errors.Wrapf(err, "node %q", name)
		}
		if entry != nil {
			obj.Mesh = entry.mesh
			obj.Renderer = &scene.Renderer{Materials: append([]*scene.Material(nil), entry.slots...)}
		}
	}

	for _, c := range n.Children {
		child, err := r.node(c, visiting)
		if err != nil {
			return nil, err
		}
		obj.AddChild(child)
	}
	return obj, nil
}

func nodeTransform(n *gltf.Node) scene.Transform {
	if n.Matrix != gltf.DefaultMatrix && n.Matrix != ([16]float32{}) {
		t, rot, s := geometry.Decompose(mgl32.Mat4(n.Matrix))
		return scene.Transform{Position: t, Rotation: rot, Scale: s}
	}

	tr := scene.IdentityTransform()
	tr.Position = n.Translation
	if n.Rotation != ([4]float32{}) {
		tr.Rotation = mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}
	}
	if n.Scale != ([3]float32{}) {
		tr.Scale = n.Scale
	}
	return tr
}

func nodeActive(n *gltf.Node) bool {
	extras, ok := n.Extras.(map[string]interface{})
	if !ok {
		return true
	}
	if active, ok := extras[ActiveExtra].(bool); ok {
		return active
	}
	return true
}

// mesh converts a glTF mesh. Each triangle primitive becomes one sub-mesh and
// one material slot. A mesh without triangle primitives yields nil.
func (r *documentReader) mesh(idx uint32) (*meshEntry, error) {
	if e, ok := r.meshes[idx]; ok {
		return e, nil
	}
	if int(idx) >= len(r.doc.Meshes) {
		return nil, fmt.Errorf("mesh index %d out of range", idx)
	}

	gm := r.doc.Meshes[idx]
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("mesh_%d", idx)
	}

	m := scene.NewMesh(name)
	var attrs attributeSet
	var slots []*scene.Material

	for pi, p := range gm.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			r.log.Warn("skipping non-triangle primitive",
				zap.String("mesh", name), zap.Int("primitive", pi))
			continue
		}
		if err := r.appendPrimitive(m, &attrs, p); err != nil {
			return nil, errors.Wrapf(err, "mesh %q primitive %d", name, pi)
		}
		slots = append(slots, r.material(p.Material))
	}
	attrs.apply(m)

	var entry *meshEntry
	if len(m.SubMeshes) > 0 {
		entry = &meshEntry{mesh: m, slots: slots}
	}
	r.meshes[idx] = entry
	return entry, nil
}

// attributeSet collects optional attributes across primitives. A primitive
// lacking an attribute another primitive has is zero filled.
type attributeSet struct {
	normals            [][3]float32
	uv0, uv1           [][2]float32
	hasN, hasU0, hasU1 bool
}

func (a *attributeSet) apply(m *scene.Mesh) {
	if a.hasN {
		m.Normals = a.normals
	}
	if a.hasU0 {
		m.UV0 = a.uv0
	}
	if a.hasU1 {
		m.UV1 = a.uv1
	}
}

func (r *documentReader) appendPrimitive(m *scene.Mesh, attrs *attributeSet, p *gltf.Primitive) error {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return errors.New("primitive has no POSITION attribute")
	}
	acr, err := r.accessor(posIdx)
	if err != nil {
		return err
	}
	positions, err := modeler.ReadPosition(r.doc, acr, nil)
	if err != nil {
		return errors.Wrap(err, "failed to read positions")
	}
	count := len(positions)
	base := uint32(m.VertexCount())
	m.Positions = append(m.Positions, positions...)

	var normals [][3]float32
	if idx, ok := p.Attributes[gltf.NORMAL]; ok {
		if acr, err = r.accessor(idx); err != nil {
			return err
		}
		if normals, err = modeler.ReadNormal(r.doc, acr, nil); err != nil {
			return errors.Wrap(err, "failed to read normals")
		}
		attrs.hasN = true
	}
	attrs.normals = append(attrs.normals, fit3(normals, count)...)

	uv0, err := r.readUV(p, gltf.TEXCOORD_0, &attrs.hasU0)
	if err != nil {
		return err
	}
	attrs.uv0 = append(attrs.uv0, fit2(uv0, count)...)

	uv1, err := r.readUV(p, gltf.TEXCOORD_1, &attrs.hasU1)
	if err != nil {
		return err
	}
	attrs.uv1 = append(attrs.uv1, fit2(uv1, count)...)

	var indices []uint32
	if p.Indices != nil {
		if acr, err = r.accessor(*p.Indices); err != nil {
			return err
		}
		if indices, err = modeler.ReadIndices(r.doc, acr, nil); err != nil {
			return errors.Wrap(err, "failed to read indices")
		}
	} else {
		indices = make([]uint32, count)
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	for i, idx := range indices {
		if int(idx) >= count {
			return fmt.Errorf("index %d at %d out of range for %d vertices", idx, i, count)
		}
		indices[i] = idx + base
	}
	m.SubMeshes = append(m.SubMeshes, scene.SubMesh{Indices: indices})
	return nil
}

func (r *documentReader) readUV(p *gltf.Primitive, attr string, seen *bool) ([][2]float32, error) {
	idx, ok := p.Attributes[attr]
	if !ok {
		return nil, nil
	}
	acr, err := r.accessor(idx)
	if err != nil {
		return nil, err
	}
	uv, err := modeler.ReadTextureCoord(r.doc, acr, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", attr)
	}
	*seen = true
	return uv, nil
}

func (r *documentReader) accessor(idx uint32) (*gltf.Accessor, error) {
	if int(idx) >= len(r.doc.Accessors) {
		return nil, fmt.Errorf("accessor index %d out of range", idx)
	}
	return r.doc.Accessors[idx], nil
}

func (r *documentReader) material(idx *uint32) *scene.Material {
	if idx == nil || int(*idx) >= len(r.doc.Materials) {
		return nil
	}
	if m, ok := r.materials[*idx]; ok {
		return m
	}

	gm := r.doc.Materials[*idx]
	name := gm.Name
	if name == "" {
		name = fmt.Sprintf("material_%d", *idx)
	}
	m := scene.NewMaterial(name)
	m.DoubleSided = gm.DoubleSided
	if gm.PBRMetallicRoughness != nil && gm.PBRMetallicRoughness.BaseColorFactor != nil {
		m.BaseColor = *gm.PBRMetallicRoughness.BaseColorFactor
	}
	r.materials[*idx] = m
	return m
}

// fit3 returns v resized to n entries, zero filled.
func fit3(v [][3]float32, n int) [][3]float32 {
	if len(v) == n {
		return v
	}
	out := make([][3]float32, n)
	copy(out, v)
	return out
}

func fit2(v [][2]float32, n int) [][2]float32 {
	if len(v) == n {
		return v
	}
	out := make([][2]float32, n)
	copy(out, v)
	return out
}
