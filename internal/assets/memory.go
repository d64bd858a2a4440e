package assets

import (
	"path"
	"sort"

	"github.com/pkg/errors"

	"github.com/philipparndt/meshcombine/internal/combine"
	"github.com/philipparndt/meshcombine/internal/scene"
)

var _ combine.AssetStore = (*MemoryStore)(nil)

// MemoryStore keeps saved assets in memory. Directories must be declared with
// AddDir before anything can be saved into them.
type MemoryStore struct {
	dirs    map[string]bool
	meshes  map[string]*scene.Mesh
	prefabs map[string]*scene.Object
	order   []string
}

func NewMemoryStore(dirs ...string) *MemoryStore {
	s := &MemoryStore{
		dirs:    map[string]bool{".": true},
		meshes:  map[string]*scene.Mesh{},
		prefabs: map[string]*scene.Object{},
	}
	for _, d := range dirs {
		s.AddDir(d)
	}
	return s
}

// AddDir declares dir and all of its parents.
func (s *MemoryStore) AddDir(dir string) {
	for d := Clean(dir); d != "." && d != ""; d = path.Dir(d) {
		s.dirs[d] = true
	}
}

func (s *MemoryStore) DirExists(dir string) bool {
	return s.dirs[Clean(dir)]
}

func (s *MemoryStore) SaveMesh(mesh *scene.Mesh, assetPath string) error {
	p := Clean(assetPath)
	if !s.dirs[path.Dir(p)] {
		return errors.Wrapf(ErrMissingDirectory, "%s", path.Dir(p))
	}
	s.record(p)
	s.meshes[p] = mesh
	return nil
}

func (s *MemoryStore) SavePrefab(root *scene.Object, assetPath string) error {
	p := Clean(assetPath)
	if !s.dirs[path.Dir(p)] {
		return errors.Wrapf(ErrMissingDirectory, "%s", path.Dir(p))
	}
	s.record(p)
	s.prefabs[p] = root
	return nil
}

func (s *MemoryStore) record(p string) {
	if _, ok := s.meshes[p]; ok {
		return
	}
	if _, ok := s.prefabs[p]; ok {
		return
	}
	s.order = append(s.order, p)
}

// Mesh returns the mesh saved at assetPath, nil if there is none.
func (s *MemoryStore) Mesh(assetPath string) *scene.Mesh {
	return s.meshes[Clean(assetPath)]
}

// Prefab returns the hierarchy saved at assetPath, nil if there is none.
func (s *MemoryStore) Prefab(assetPath string) *scene.Object {
	return s.prefabs[Clean(assetPath)]
}

// Paths returns every saved asset path in first-save order.
func (s *MemoryStore) Paths() []string {
	return append([]string(nil), s.order...)
}

// Dirs returns the declared directories, sorted.
func (s *MemoryStore) Dirs() []string {
	var out []string
	for d := range s.dirs {
		if d != "." {
			out = append(out, d)
		}
	}
	sort.Strings(out)
	return out
}
