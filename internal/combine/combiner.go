// Package combine merges the meshes under a root object into one mesh per
// material and reassembles the result as a new object hierarchy.
package combine

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/scene"
)

// OutputNode is one merged mesh paired with the material of its group.
type OutputNode struct {
	Name        string
	Object      *scene.Object
	Mesh        *scene.Mesh
	Material    *scene.Material
	AssetPath   string
	SourceCount int
}

// Result describes a finished run.
type Result struct {
	// Root is the result hierarchy: the single output object, or a synthetic
	// parent of all of them when there is more than one material.
	Root       *scene.Object
	Nodes      []*OutputNode
	PrefabPath string
	Warnings   []Warning
}

// Combiner runs the scan, group, merge and assemble passes.
type Combiner struct {
	store     AssetStore
	uv        UVGenerator
	log       *zap.Logger
	enumerate func(root *scene.Object) []scene.MeshBearer
}

// NewCombiner creates a combiner persisting through store.
func NewCombiner(store AssetStore, opts ...Option) *Combiner {
	c := &Combiner{
		store:     store,
		log:       zap.NewNop(),
		enumerate: scene.MeshBearingDescendants,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Combine merges root's meshes by material, persists one mesh asset per
// material and the result hierarchy as a prefab, then deactivates root.
//
// Root's transform is the same before and after the call, whatever the
// outcome. Nothing is written when the scan fails. Once persistence starts a
// failure leaves the assets written so far in place.
func (c *Combiner) Combine(root *scene.Object, opts Options) (*Result, error) {
	if root == nil {
		return nil, errors.WithStack(ErrMissingRoot)
	}
	if opts.OutputDir == "" || !c.store.DirExists(opts.OutputDir) {
		return nil, errors.Wrapf(ErrInvalidOutputPath, "%q", opts.OutputDir)
	}

	pin := pinRoot(root)
	defer pin.release()

	entries, warnings, err := c.scan(root)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.Wrapf(ErrNoEligibleMeshes, "root %q", root.Name)
	}

	groups := GroupByMaterial(entries)
	c.log.Info("grouped meshes by material",
		zap.String("root", root.Name),
		zap.Int("entries", len(entries)),
		zap.Int("materials", groups.Len()))

	result := &Result{Warnings: warnings}
	for _, group := range groups.Groups() {
		node, err := c.combineGroup(root, group, groups.Len(), opts, result)
		if err != nil {
			return result, err
		}
		result.Nodes = append(result.Nodes, node)
	}

	if err := c.assemble(root, pin, opts, result); err != nil {
		return result, err
	}
	return result, nil
}

func (c *Combiner) combineGroup(root *scene.Object, group *MaterialGroup, groupCount int, opts Options, result *Result) (*OutputNode, error) {
	instances := make([]Instance, len(group.Entries))
	for i, e := range group.Entries {
		instances[i] = Instance{Mesh: e.Mesh, Transform: e.LocalToWorld}
	}

	merged := MergeMeshes(instances, opts.IndexFormat)
	name := nodeName(root, group.Material, merged, groupCount)
	merged.Name = name

	if opts.GenerateSecondaryUVs {
		c.generateSecondaryUVs(merged, result)
	}

	assetPath := meshAssetPath(opts.OutputDir, name)
	if err := c.store.SaveMesh(merged, assetPath); err != nil {
		return nil, errors.Wrapf(err, "failed to save mesh %q", assetPath)
	}

	obj := scene.NewObject(name)
	obj.Mesh = merged
	obj.Renderer = &scene.Renderer{Materials: []*scene.Material{group.Material}}

	c.log.Info("combined material group",
		zap.String("name", name),
		zap.String("material", group.Material.Name),
		zap.Int("sources", len(group.Entries)),
		zap.Int("vertices", merged.VertexCount()),
		zap.Int("indices", merged.IndexCount()),
		zap.Stringer("index_format", merged.IndexFormat))

	return &OutputNode{
		Name:        name,
		Object:      obj,
		Mesh:        merged,
		Material:    group.Material,
		AssetPath:   assetPath,
		SourceCount: len(group.Entries),
	}, nil
}

func (c *Combiner) generateSecondaryUVs(mesh *scene.Mesh, result *Result) {
	var err error
	if c.uv == nil {
		err = errors.New("no secondary UV generator configured")
	} else {
		err = c.uv.GenerateSecondaryUVs(mesh)
	}
	if err == nil {
		return
	}
	w := Warning{
		Kind:    WarnSecondaryUVGenerationFailed,
		Object:  mesh.Name,
		Message: err.Error(),
	}
	c.log.Warn("secondary UV generation failed", zap.String("mesh", mesh.Name), zap.Error(err))
	result.Warnings = append(result.Warnings, w)
}

// assemble builds the result hierarchy, persists it and swaps it in for the
// source root.
func (c *Combiner) assemble(root *scene.Object, pin *rootPin, opts Options, result *Result) error {
	if len(result.Nodes) == 1 {
		result.Root = result.Nodes[0].Object
	} else {
		result.Root = scene.NewObject(resultName(root))
		for _, node := range result.Nodes {
			result.Root.AddChild(node.Object)
		}
	}

	prefabPath := prefabAssetPath(opts.OutputDir, result.Root.Name)
	if err := c.store.SavePrefab(result.Root, prefabPath); err != nil {
		return errors.Wrapf(err, "failed to save prefab %q", prefabPath)
	}
	result.PrefabPath = prefabPath

	root.SetActive(false)
	result.Root.SetWorldPosition(pin.position)

	c.log.Info("saved prefab",
		zap.String("path", prefabPath),
		zap.Int("nodes", len(result.Nodes)))
	return nil
}
