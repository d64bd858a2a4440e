package combine

import (
	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/scene"
)

const (
	// MeshAssetExt is appended to mesh asset names.
	MeshAssetExt = ".mesh.glb"
	// PrefabAssetExt is appended to the result hierarchy's name.
	PrefabAssetExt = ".prefab.glb"
)

// Options are the per-run settings supplied by the caller.
type Options struct {
	// OutputDir is relative to the store's asset root and must already exist.
	OutputDir string
	// IndexFormat of every merged mesh. The zero value is 32-bit. A 16-bit
	// format is not promoted when a group exceeds 65535 vertices.
	IndexFormat          scene.IndexFormat
	GenerateSecondaryUVs bool
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithLogger sets the logger used for warnings and progress.
func WithLogger(log *zap.Logger) Option {
	return func(c *Combiner) {
		if log != nil {
			c.log = log
		}
	}
}

// WithUVGenerator sets the secondary UV generator.
func WithUVGenerator(gen UVGenerator) Option {
	return func(c *Combiner) {
		c.uv = gen
	}
}

// WithEnumerator replaces how mesh-bearing objects are found under the root.
func WithEnumerator(fn func(root *scene.Object) []scene.MeshBearer) Option {
	return func(c *Combiner) {
		if fn != nil {
			c.enumerate = fn
		}
	}
}
