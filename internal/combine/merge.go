package combine

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshcombine/internal/geometry"
	"github.com/philipparndt/meshcombine/internal/scene"
)

// Instance is one mesh placed by a transform.
type Instance struct {
	Mesh      *scene.Mesh
	Transform mgl32.Mat4
}

// MergeMeshes bakes every instance's transform into its vertices and
// concatenates them into one mesh with a single sub-mesh. Index buffers of all
// sub-meshes are appended in order with the running vertex base added.
// Attributes present on only some inputs are zero filled for the others.
// Mirroring transforms flip triangle winding.
//
// Under IndexFormat16 indices are truncated to 16 bits, so a result with more
// than 65535 vertices references the wrong vertices. Check IndexRangeValid.
func MergeMeshes(instances []Instance, format scene.IndexFormat) *scene.Mesh {
	out := scene.NewMesh("")
	out.IndexFormat = format

	vertexCount, indexCount := 0, 0
	var withNormals, withUV0, withUV1 bool
	for _, inst := range instances {
		vertexCount += inst.Mesh.VertexCount()
		indexCount += inst.Mesh.IndexCount()
		withNormals = withNormals || inst.Mesh.HasNormals()
		withUV0 = withUV0 || inst.Mesh.HasUV0()
		withUV1 = withUV1 || inst.Mesh.HasUV1()
	}

	out.Positions = make([][3]float32, 0, vertexCount)
	if withNormals {
		out.Normals = make([][3]float32, 0, vertexCount)
	}
	if withUV0 {
		out.UV0 = make([][2]float32, 0, vertexCount)
	}
	if withUV1 {
		out.UV1 = make([][2]float32, 0, vertexCount)
	}
	indices := make([]uint32, 0, indexCount)

	for _, inst := range instances {
		src := inst.Mesh
		base := uint32(len(out.Positions))

		for _, p := range src.Positions {
			out.Positions = append(out.Positions, geometry.TransformPoint(inst.Transform, p))
		}

		if withNormals {
			if src.HasNormals() {
				nm := geometry.NormalMatrix(inst.Transform)
				for _, n := range src.Normals {
					out.Normals = append(out.Normals, geometry.TransformNormal(nm, n))
				}
			} else {
				out.Normals = append(out.Normals, make([][3]float32, src.VertexCount())...)
			}
		}
		if withUV0 {
			out.UV0 = appendUVs(out.UV0, src.UV0, src.HasUV0(), src.VertexCount())
		}
		if withUV1 {
			out.UV1 = appendUVs(out.UV1, src.UV1, src.HasUV1(), src.VertexCount())
		}

		mirror := geometry.IsMirroring(inst.Transform)
		for _, sm := range src.SubMeshes {
			indices = appendRemapped(indices, sm.Indices, base, mirror, format)
		}
	}

	out.SubMeshes = []scene.SubMesh{{Indices: indices}}
	return out
}

func appendUVs(dst, src [][2]float32, present bool, n int) [][2]float32 {
	if present {
		return append(dst, src...)
	}
	return append(dst, make([][2]float32, n)...)
}

func appendRemapped(dst, src []uint32, base uint32, mirror bool, format scene.IndexFormat) []uint32 {
	tri := len(src) - len(src)%3
	for i := 0; i < tri; i += 3 {
		a, b, c := src[i], src[i+1], src[i+2]
		if mirror {
			b, c = c, b
		}
		dst = append(dst, remap(a+base, format), remap(b+base, format), remap(c+base, format))
	}
	for _, idx := range src[tri:] {
		dst = append(dst, remap(idx+base, format))
	}
	return dst
}

func remap(idx uint32, format scene.IndexFormat) uint32 {
	if format == scene.IndexFormat16 {
		return uint32(uint16(idx))
	}
	return idx
}
