package combine

import "github.com/philipparndt/meshcombine/internal/scene"

// AssetStore persists combined meshes and result hierarchies. Paths are
// slash separated and relative to the store's asset root.
type AssetStore interface {
	// DirExists reports whether dir exists under the asset root.
	DirExists(dir string) bool
	// SaveMesh fails if the containing directory of path does not exist.
	SaveMesh(mesh *scene.Mesh, path string) error
	SavePrefab(root *scene.Object, path string) error
}

// UVGenerator fills a mesh's secondary UV channel. It may fail; the combiner
// keeps the mesh either way.
type UVGenerator interface {
	GenerateSecondaryUVs(mesh *scene.Mesh) error
}
