package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshcombine/internal/geometry"
	"github.com/philipparndt/meshcombine/internal/scene"
	"github.com/philipparndt/meshcombine/internal/ui"
)

// ScenePrinter handles printing scene hierarchy and details
type ScenePrinter struct{}

// NewScenePrinter creates a new ScenePrinter
func NewScenePrinter() *ScenePrinter {
	return &ScenePrinter{}
}

// PrintHierarchy prints every object indented by depth
func (p *ScenePrinter) PrintHierarchy(s *scene.Scene) {
	for _, r := range s.Roots {
		p.printObject(r, 0)
	}
}

func (p *ScenePrinter) printObject(o *scene.Object, depth int) {
	ui.PrintTree(depth, o.Name, ObjectDetail(o))
	for _, c := range o.Children() {
		p.printObject(c, depth+1)
	}
}

// ObjectDetail summarises an object's position, mesh and materials.
func ObjectDetail(o *scene.Object) string {
	var parts []string
	pos := o.Transform.Position
	if pos != (mgl32.Vec3{}) {
		parts = append(parts, fmt.Sprintf("at (%g, %g, %g)", pos[0], pos[1], pos[2]))
	}
	if o.Mesh != nil {
		parts = append(parts, fmt.Sprintf("mesh %s", o.Mesh.Name))
	}
	if o.Renderer != nil && len(o.Renderer.Materials) > 0 {
		names := make([]string, len(o.Renderer.Materials))
		for i, m := range o.Renderer.Materials {
			names[i] = "<none>"
			if m != nil {
				names[i] = m.Name
			}
		}
		parts = append(parts, "["+strings.Join(names, ", ")+"]")
	}
	if !o.Active {
		parts = append(parts, "inactive")
	}
	return strings.Join(parts, " ")
}

// PrintMeshes prints each distinct mesh once with its counts and bounds
func (p *ScenePrinter) PrintMeshes(s *scene.Scene) {
	meshes := distinctMeshes(s)
	if len(meshes) == 0 {
		ui.PrintStep("No meshes")
		return
	}

	ui.PrintTableHeader("Mesh", "Size", "Vertices", "Triangles")
	for _, m := range meshes {
		size := "-"
		if bb, err := geometry.CalculateBoundingBox(m.Positions); err == nil {
			size = fmt.Sprintf("%.2fx%.2fx%.2f", bb.Width(), bb.Height(), bb.Depth())
		}
		ui.PrintTableRow(m.Name, size, strconv.Itoa(m.VertexCount()), strconv.Itoa(m.TriangleCount()))
	}
}

// PrintMaterials prints each distinct material with the number of objects using it
func (p *ScenePrinter) PrintMaterials(s *scene.Scene) {
	var order []*scene.Material
	users := map[*scene.Material]int{}
	for _, r := range s.Roots {
		r.Walk(func(o *scene.Object) bool {
			if o.Renderer == nil {
				return true
			}
			for _, m := range o.Renderer.Materials {
				if m == nil {
					continue
				}
				if _, ok := users[m]; !ok {
					order = append(order, m)
				}
				users[m]++
			}
			return true
		})
	}

	if len(order) == 0 {
		ui.PrintStep("No materials")
		return
	}
	for _, m := range order {
		ui.PrintItem(fmt.Sprintf("%s (used by %d)", m.Name, users[m]))
	}
}

func distinctMeshes(s *scene.Scene) []*scene.Mesh {
	var out []*scene.Mesh
	seen := map[*scene.Mesh]bool{}
	for _, r := range s.Roots {
		r.Walk(func(o *scene.Object) bool {
			if o.Mesh != nil && !seen[o.Mesh] {
				seen[o.Mesh] = true
				out = append(out, o.Mesh)
			}
			return true
		})
	}
	return out
}
