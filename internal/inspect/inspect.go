package inspect

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/philipparndt/meshcombine/internal/gltfio"
	"github.com/philipparndt/meshcombine/internal/scene"
	"github.com/philipparndt/meshcombine/internal/ui"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Inspector provides functionality to inspect glTF scenes
type Inspector struct {
	loader  *gltfio.Loader
	printer *ScenePrinter
}

// NewInspector creates a new Inspector
func NewInspector(loader *gltfio.Loader) *Inspector {
	return &Inspector{loader: loader, printer: NewScenePrinter()}
}

// Inspect reads and displays the contents of a glTF file. With dump set the
// scene is also written to w as a spew dump.
func (i *Inspector) Inspect(filename string, dump bool, w io.Writer) error {
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("file not found: %s", filename)
	}

	s, err := i.loader.Open(filename)
	if err != nil {
		return fmt.Errorf("error reading scene: %w", err)
	}

	ui.PrintHeader(fmt.Sprintf("Inspecting: %s", filename))
	if s.Name != "" {
		ui.PrintKeyValue("Scene", s.Name)
	}
	ui.PrintKeyValue("Objects", fmt.Sprintf("%d", s.ObjectCount()))

	ui.PrintHeader("Hierarchy:")
	i.printer.PrintHierarchy(s)

	ui.PrintHeader("Meshes:")
	i.printer.PrintMeshes(s)

	ui.PrintHeader("Materials:")
	i.printer.PrintMaterials(s)

	if dump {
		spewConfig.Fdump(w, Snapshot(s))
	}
	return nil
}

// ObjectSnapshot is a printable view of one object without back references
// or vertex data.
type ObjectSnapshot struct {
	Name      string
	ID        int64
	Active    bool
	Transform scene.Transform
	Mesh      string
	Vertices  int
	Indices   int
	Materials []string
	Children  []ObjectSnapshot
}

// Snapshot returns one snapshot per top level object.
func Snapshot(s *scene.Scene) []ObjectSnapshot {
	out := make([]ObjectSnapshot, 0, len(s.Roots))
	for _, r := range s.Roots {
		out = append(out, snapshot(r))
	}
	return out
}

func snapshot(o *scene.Object) ObjectSnapshot {
	snap := ObjectSnapshot{
		Name:      o.Name,
		ID:        o.InstanceID(),
		Active:    o.Active,
		Transform: o.Transform,
	}
	if o.Mesh != nil {
		snap.Mesh = o.Mesh.Name
		snap.Vertices = o.Mesh.VertexCount()
		snap.Indices = o.Mesh.IndexCount()
	}
	if o.Renderer != nil {
		for _, m := range o.Renderer.Materials {
			name := "<none>"
			if m != nil {
				name = m.Name
			}
			snap.Materials = append(snap.Materials, name)
		}
	}
	for _, c := range o.Children() {
		snap.Children = append(snap.Children, snapshot(c))
	}
	return snap
}
