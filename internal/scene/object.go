// Package scene is the in-memory object hierarchy the combiner operates on:
// objects with transforms, mesh filters, renderers and materials.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/philipparndt/meshcombine/internal/geometry"
)

// Transform is a local position/rotation/scale triple.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// IdentityTransform returns a transform with no translation, rotation or scale.
func IdentityTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix returns the local matrix T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	return geometry.ComposeTRS(t.Position, t.Rotation, t.Scale)
}

// Renderer carries the material slots of a mesh-bearing object.
type Renderer struct {
	Materials []*Material
}

// Object is a node of the scene hierarchy.
type Object struct {
	Name      string
	Transform Transform
	Active    bool

	// Mesh is the shared mesh of the object's mesh filter, nil if the object
	// has no mesh filter.
	Mesh     *Mesh
	Renderer *Renderer

	parent   *Object
	children []*Object
	id       int64
}

// NewObject creates an active object with an identity transform.
func NewObject(name string) *Object {
	return &Object{
		Name:      name,
		Transform: IdentityTransform(),
		Active:    true,
		id:        nextInstanceID(),
	}
}

// InstanceID returns the process-unique id of the object.
func (o *Object) InstanceID() int64 {
	if o.id == 0 {
		o.id = nextInstanceID()
	}
	return o.id
}

// Parent returns the parent object, nil for a top level object.
func (o *Object) Parent() *Object {
	return o.parent
}

// Children returns the direct children in insertion order.
func (o *Object) Children() []*Object {
	return o.children
}

// AddChild re-parents child under o, keeping its local transform.
func (o *Object) AddChild(child *Object) {
	child.SetParent(o)
}

// SetParent moves o under parent. A nil parent detaches o.
func (o *Object) SetParent(parent *Object) {
	if o.parent == parent {
		return
	}
	if o.parent != nil {
		siblings := o.parent.children
		for i, c := range siblings {
			if c == o {
				o.parent.children = append(siblings[:i:i], siblings[i+1:]...)
				break
			}
		}
	}
	o.parent = parent
	if parent != nil {
		parent.children = append(parent.children, o)
	}
}

// SetActive sets the object's own active flag.
func (o *Object) SetActive(active bool) {
	o.Active = active
}

// ActiveInHierarchy reports whether o and all of its ancestors are active.
func (o *Object) ActiveInHierarchy() bool {
	for cur := o; cur != nil; cur = cur.parent {
		if !cur.Active {
			return false
		}
	}
	return true
}

// LocalToWorld returns the matrix mapping o's local space to world space.
func (o *Object) LocalToWorld() mgl32.Mat4 {
	m := o.Transform.Matrix()
	for cur := o.parent; cur != nil; cur = cur.parent {
		m = cur.Transform.Matrix().Mul4(m)
	}
	return m
}

// WorldPosition returns the world space origin of o.
func (o *Object) WorldPosition() mgl32.Vec3 {
	return o.LocalToWorld().Col(3).Vec3()
}

// SetWorldPosition moves o so that its origin lands on p in world space.
func (o *Object) SetWorldPosition(p mgl32.Vec3) {
	if o.parent == nil {
		o.Transform.Position = p
		return
	}
	inv := o.parent.LocalToWorld().Inv()
	o.Transform.Position = mgl32.TransformCoordinate(p, inv)
}

// Walk visits o and its descendants depth-first in pre-order. Returning false
// from fn skips the subtree below the visited object.
func (o *Object) Walk(fn func(*Object) bool) {
	if !fn(o) {
		return
	}
	for _, c := range o.children {
		c.Walk(fn)
	}
}

// Find returns the first object named name in o's subtree, o included.
func (o *Object) Find(name string) *Object {
	var found *Object
	o.Walk(func(cur *Object) bool {
		if found != nil {
			return false
		}
		if cur.Name == name {
			found = cur
			return false
		}
		return true
	})
	return found
}
