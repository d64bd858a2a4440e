package scene

import (
	"fmt"
	"strings"
)

// IndexFormat is the bit width of a mesh's index buffer.
type IndexFormat int

const (
	// IndexFormat32 is the default wide format.
	IndexFormat32 IndexFormat = iota
	IndexFormat16
)

// MaxVertices returns how many vertices a mesh using f can address.
func (f IndexFormat) MaxVertices() int {
	if f == IndexFormat16 {
		return 65535
	}
	return 1<<32 - 1
}

// Bits returns 16 or 32.
func (f IndexFormat) Bits() int {
	if f == IndexFormat16 {
		return 16
	}
	return 32
}

func (f IndexFormat) String() string {
	return fmt.Sprintf("uint%d", f.Bits())
}

// ParseIndexFormat accepts "16", "32", "uint16" and "uint32".
func ParseIndexFormat(s string) (IndexFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "16", "uint16":
		return IndexFormat16, nil
	case "", "32", "uint32":
		return IndexFormat32, nil
	}
	return IndexFormat32, fmt.Errorf("invalid index format %q (expected 16 or 32)", s)
}

// SubMesh is one index range of a mesh; each sub-mesh maps to one material slot.
type SubMesh struct {
	Indices []uint32
}

// Mesh holds vertex attributes and triangle lists.
type Mesh struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	UV0       [][2]float32
	// UV1 is the secondary (lightmap) UV channel.
	UV1 [][2]float32

	SubMeshes   []SubMesh
	IndexFormat IndexFormat

	id int64
}

// NewMesh creates an empty mesh with a fresh instance id.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name, id: nextInstanceID()}
}

// InstanceID returns the process-unique id of the mesh.
func (m *Mesh) InstanceID() int64 {
	if m.id == 0 {
		m.id = nextInstanceID()
	}
	return m.id
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// IndexCount returns the total index count over all sub-meshes.
func (m *Mesh) IndexCount() int {
	n := 0
	for _, sm := range m.SubMeshes {
		n += len(sm.Indices)
	}
	return n
}

func (m *Mesh) TriangleCount() int {
	return m.IndexCount() / 3
}

// Indices returns all sub-mesh indices concatenated.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, 0, m.IndexCount())
	for _, sm := range m.SubMeshes {
		out = append(out, sm.Indices...)
	}
	return out
}

func (m *Mesh) HasNormals() bool {
	return len(m.Positions) > 0 && len(m.Normals) == len(m.Positions)
}

func (m *Mesh) HasUV0() bool {
	return len(m.Positions) > 0 && len(m.UV0) == len(m.Positions)
}

func (m *Mesh) HasUV1() bool {
	return len(m.Positions) > 0 && len(m.UV1) == len(m.Positions)
}

// IndexRangeValid reports whether every vertex is addressable with the
// mesh's index format. Meshes built under a too narrow format have wrapped
// indices; nothing in this package promotes the format.
func (m *Mesh) IndexRangeValid() bool {
	return m.VertexCount() <= m.IndexFormat.MaxVertices()
}

// Material is compared by pointer identity; two materials with the same name
// are still different materials.
type Material struct {
	Name        string
	BaseColor   [4]float32
	DoubleSided bool
}

// NewMaterial creates an opaque white material.
func NewMaterial(name string) *Material {
	return &Material{Name: name, BaseColor: [4]float32{1, 1, 1, 1}}
}
