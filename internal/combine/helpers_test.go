package combine

import (
	"errors"
	"path"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshcombine/internal/scene"
)

type fakeStore struct {
	dirs       map[string]bool
	meshes     map[string]*scene.Mesh
	prefabs    map[string]*scene.Object
	failMeshAt int // fail the n-th SaveMesh call (1-based), 0 never fails
	saveCalls  int
}

func newFakeStore(dirs ...string) *fakeStore {
	s := &fakeStore{
		dirs:    map[string]bool{},
		meshes:  map[string]*scene.Mesh{},
		prefabs: map[string]*scene.Object{},
	}
	for _, d := range dirs {
		s.dirs[d] = true
	}
	return s
}

func (s *fakeStore) DirExists(dir string) bool {
	return s.dirs[strings.TrimSuffix(dir, "/")]
}

func (s *fakeStore) SaveMesh(mesh *scene.Mesh, p string) error {
	s.saveCalls++
	if s.failMeshAt > 0 && s.saveCalls == s.failMeshAt {
		return errors.New("disk full")
	}
	if !s.dirs[path.Dir(p)] {
		return errors.New("no such directory")
	}
	s.meshes[p] = mesh
	return nil
}

func (s *fakeStore) SavePrefab(root *scene.Object, p string) error {
	s.prefabs[p] = root
	return nil
}

func (s *fakeStore) written() int {
	return len(s.meshes) + len(s.prefabs)
}

type failingUV struct{}

func (failingUV) GenerateSecondaryUVs(*scene.Mesh) error {
	return errors.New("degenerate mesh")
}

type constUV struct{}

func (constUV) GenerateSecondaryUVs(m *scene.Mesh) error {
	m.UV1 = make([][2]float32, m.VertexCount())
	return nil
}

// quad returns a two-triangle unit square in the XY plane.
func quad(name string) *scene.Mesh {
	m := scene.NewMesh(name)
	m.Positions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	m.Normals = [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	m.UV0 = [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	m.SubMeshes = []scene.SubMesh{{Indices: []uint32{0, 1, 2, 0, 2, 3}}}
	return m
}

func triangle(name string) *scene.Mesh {
	m := scene.NewMesh(name)
	m.Positions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	m.SubMeshes = []scene.SubMesh{{Indices: []uint32{0, 1, 2}}}
	return m
}

func meshChild(parent *scene.Object, name string, mesh *scene.Mesh, pos mgl32.Vec3, mats ...*scene.Material) *scene.Object {
	o := scene.NewObject(name)
	o.Transform.Position = pos
	o.Mesh = mesh
	if mats != nil {
		o.Renderer = &scene.Renderer{Materials: mats}
	}
	parent.AddChild(o)
	return o
}
