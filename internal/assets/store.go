// Package assets persists combined meshes and prefabs under an asset root.
package assets

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/combine"
	"github.com/philipparndt/meshcombine/internal/gltfio"
	"github.com/philipparndt/meshcombine/internal/scene"
)

// ErrMissingDirectory is returned when a save targets a directory that does not exist.
var ErrMissingDirectory = errors.New("directory does not exist")

var _ combine.AssetStore = (*GLTFStore)(nil)

// GLTFStore writes assets as binary glTF files below Root. Asset paths are
// slash separated and relative to Root; directories are never created.
type GLTFStore struct {
	Root string
	log  *zap.Logger
}

func NewGLTFStore(root string, log *zap.Logger) *GLTFStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &GLTFStore{Root: root, log: log}
}

// Abs maps an asset path to a file system path.
func (s *GLTFStore) Abs(assetPath string) string {
	return filepath.Join(s.Root, filepath.FromSlash(Clean(assetPath)))
}

func (s *GLTFStore) DirExists(dir string) bool {
	info, err := os.Stat(s.Abs(dir))
	return err == nil && info.IsDir()
}

func (s *GLTFStore) SaveMesh(mesh *scene.Mesh, assetPath string) error {
	if err := s.checkDir(assetPath); err != nil {
		return err
	}
	if err := gltfio.Save(gltfio.MeshDocument(mesh), s.Abs(assetPath)); err != nil {
		return err
	}
	s.log.Debug("wrote mesh asset", zap.String("path", assetPath), zap.Int("vertices", mesh.VertexCount()))
	return nil
}

func (s *GLTFStore) SavePrefab(root *scene.Object, assetPath string) error {
	if err := s.checkDir(assetPath); err != nil {
		return err
	}
	if err := gltfio.Save(gltfio.ObjectDocument(root), s.Abs(assetPath)); err != nil {
		return err
	}
	s.log.Debug("wrote prefab asset", zap.String("path", assetPath), zap.String("root", root.Name))
	return nil
}

func (s *GLTFStore) checkDir(assetPath string) error {
	dir := path.Dir(Clean(assetPath))
	if !s.DirExists(dir) {
		return errors.Wrapf(ErrMissingDirectory, "%s", dir)
	}
	return nil
}

// Clean normalises an asset path: forward slashes, no leading slash, no
// trailing slash.
func Clean(assetPath string) string {
	p := path.Clean(strings.ReplaceAll(assetPath, "\\", "/"))
	return strings.TrimPrefix(p, "/")
}
