package combine

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/philipparndt/meshcombine/internal/scene"
)

// SourceEntry is one mesh found under the root, with its transform captured
// while the root sat at the origin.
type SourceEntry struct {
	Object       *scene.Object
	Mesh         *scene.Mesh
	Material     *scene.Material
	LocalToWorld mgl32.Mat4
}

// rootPin holds a root at the world origin until released.
type rootPin struct {
	root     *scene.Object
	saved    scene.Transform
	position mgl32.Vec3
}

// pinRoot moves root's world position to the origin. The returned pin must be
// released on every exit path; release restores the exact saved transform.
func pinRoot(root *scene.Object) *rootPin {
	p := &rootPin{
		root:     root,
		saved:    root.Transform,
		position: root.WorldPosition(),
	}
	root.SetWorldPosition(mgl32.Vec3{})
	return p
}

func (p *rootPin) release() {
	p.root.Transform = p.saved
}

// scan enumerates root and collects single-material entries. Objects without
// a renderer or material are skipped with a warning; any multi-material
// object aborts the scan and discards what was collected.
func (c *Combiner) scan(root *scene.Object) ([]SourceEntry, []Warning, error) {
	var entries []SourceEntry
	var warnings []Warning

	for _, b := range c.enumerate(root) {
		var materials []*scene.Material
		if b.Renderer != nil {
			materials = b.Renderer.Materials
		}

		if len(materials) > 1 {
			c.log.Error("multi-material mesh found, aborting",
				zap.String("object", b.Object.Name),
				zap.Int("materials", len(materials)))
			return nil, warnings, errors.Wrapf(ErrMultiMaterialUnsupported,
				"object %q has %d materials; split its sub-meshes into separate meshes in a modelling tool and assign one material to each",
				b.Object.Name, len(materials))
		}

		if len(materials) == 0 || materials[0] == nil {
			w := Warning{
				Kind:    WarnMissingRendererOrMaterial,
				Object:  b.Object.Name,
				Message: "mesh has no renderer or material, skipped",
			}
			c.log.Warn(w.Message, zap.String("object", b.Object.Name))
			warnings = append(warnings, w)
			continue
		}

		entries = append(entries, SourceEntry{
			Object:       b.Object,
			Mesh:         b.Mesh,
			Material:     materials[0],
			LocalToWorld: b.LocalToWorld,
		})
	}

	return entries, warnings, nil
}
