package assets

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/philipparndt/meshcombine/internal/combine"
	"github.com/philipparndt/meshcombine/internal/models"
)

// ManifestExt replaces the prefab extension for the manifest written next to it.
const ManifestExt = ".manifest.yaml"

// NewManifest summarises a combine result.
func NewManifest(source, rootName string, res *combine.Result) *models.Manifest {
	m := &models.Manifest{
		Source: source,
		Root:   rootName,
		Prefab: res.PrefabPath,
	}
	if res.Root != nil {
		m.Result = res.Root.Name
	}
	for _, n := range res.Nodes {
		m.IndexFormat = n.Mesh.IndexFormat.String()
		m.Nodes = append(m.Nodes, models.ManifestNode{
			Name:            n.Name,
			Material:        n.Material.Name,
			Mesh:            n.AssetPath,
			Sources:         n.SourceCount,
			Vertices:        n.Mesh.VertexCount(),
			Triangles:       n.Mesh.TriangleCount(),
			IndexRangeValid: n.Mesh.IndexRangeValid(),
			SecondaryUVs:    n.Mesh.HasUV1(),
		})
	}
	for _, w := range res.Warnings {
		m.Warnings = append(m.Warnings, w.String())
	}
	return m
}

// ManifestPath returns the asset path of the manifest belonging to a prefab.
func ManifestPath(prefabPath string) string {
	return strings.TrimSuffix(prefabPath, combine.PrefabAssetExt) + ManifestExt
}

// MarshalManifest renders m as YAML.
func MarshalManifest(m *models.Manifest) ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render manifest")
	}
	return data, nil
}

// WriteManifest writes m as YAML to assetPath below the store root.
func (s *GLTFStore) WriteManifest(m *models.Manifest, assetPath string) error {
	if err := s.checkDir(assetPath); err != nil {
		return err
	}
	data, err := MarshalManifest(m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Abs(assetPath), data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write manifest %s", assetPath)
	}
	return nil
}
