package scene

import "github.com/go-gl/mathgl/mgl32"

// Scene is a set of top level objects.
type Scene struct {
	Name  string
	Roots []*Object
}

// Add appends obj as a top level object, detaching it from any parent.
func (s *Scene) Add(obj *Object) {
	obj.SetParent(nil)
	s.Roots = append(s.Roots, obj)
}

// Find returns the first object named name, searching roots in order.
func (s *Scene) Find(name string) *Object {
	for _, r := range s.Roots {
		if found := r.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// ObjectCount returns the number of objects in the scene.
func (s *Scene) ObjectCount() int {
	n := 0
	for _, r := range s.Roots {
		r.Walk(func(*Object) bool {
			n++
			return true
		})
	}
	return n
}

// MeshBearer is one object found under a root that carries a mesh.
type MeshBearer struct {
	Object       *Object
	Mesh         *Mesh
	Renderer     *Renderer
	LocalToWorld mgl32.Mat4
}

// MeshBearingDescendants enumerates root and its descendants that carry a
// mesh, depth-first in pre-order. Inactive objects and everything below them
// are skipped. Transforms are captured at call time.
func MeshBearingDescendants(root *Object) []MeshBearer {
	var out []MeshBearer
	if root == nil {
		return out
	}
	root.Walk(func(o *Object) bool {
		if !o.Active {
			return false
		}
		if o.Mesh != nil {
			out = append(out, MeshBearer{
				Object:       o,
				Mesh:         o.Mesh,
				Renderer:     o.Renderer,
				LocalToWorld: o.LocalToWorld(),
			})
		}
		return true
	})
	return out
}
