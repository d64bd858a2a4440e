package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSetParent_MovesBetweenParents(t *testing.T) {
	a := NewObject("a")
	b := NewObject("b")
	c := NewObject("c")

	a.AddChild(c)
	b.AddChild(c)

	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if c.Parent() != b || len(b.Children()) != 1 {
		t.Error("child not attached to new parent")
	}

	c.SetParent(nil)
	if c.Parent() != nil || len(b.Children()) != 0 {
		t.Error("detach failed")
	}
}

func TestSetWorldPosition_UnderScaledParent(t *testing.T) {
	parent := NewObject("parent")
	parent.Transform.Position = mgl32.Vec3{10, 0, 0}
	parent.Transform.Scale = mgl32.Vec3{2, 2, 2}
	child := NewObject("child")
	parent.AddChild(child)

	child.SetWorldPosition(mgl32.Vec3{0, 0, 0})
	if child.WorldPosition().Len() > 1e-5 {
		t.Errorf("world position = %v, want origin", child.WorldPosition())
	}
	if child.Transform.Position.Sub(mgl32.Vec3{-5, 0, 0}).Len() > 1e-5 {
		t.Errorf("local position = %v, want {-5 0 0}", child.Transform.Position)
	}
}

func TestActiveInHierarchy(t *testing.T) {
	root := NewObject("root")
	child := NewObject("child")
	root.AddChild(child)

	if !child.ActiveInHierarchy() {
		t.Error("expected active")
	}
	root.SetActive(false)
	if child.ActiveInHierarchy() {
		t.Error("child of inactive root should be inactive in hierarchy")
	}
	if !child.Active {
		t.Error("own flag must not change")
	}
}

func TestMeshBearingDescendants_PreOrder(t *testing.T) {
	mesh := NewMesh("m")
	root := NewObject("root")
	root.Mesh = mesh
	a := NewObject("a")
	a.Mesh = mesh
	a1 := NewObject("a1")
	a1.Mesh = mesh
	b := NewObject("b")
	b.Mesh = mesh
	hidden := NewObject("hidden")
	hidden.SetActive(false)
	hiddenChild := NewObject("hiddenChild")
	hiddenChild.Mesh = mesh
	plain := NewObject("plain")

	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(hidden)
	hidden.AddChild(hiddenChild)
	root.AddChild(plain)
	root.AddChild(b)

	var names []string
	for _, mb := range MeshBearingDescendants(root) {
		names = append(names, mb.Object.Name)
	}

	want := []string{"root", "a", "a1", "b"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}

	if MeshBearingDescendants(nil) != nil {
		t.Error("nil root should yield nothing")
	}
}

func TestMeshBearingDescendants_CapturesWorldTransform(t *testing.T) {
	root := NewObject("root")
	root.Transform.Position = mgl32.Vec3{1, 0, 0}
	child := NewObject("child")
	child.Transform.Position = mgl32.Vec3{0, 2, 0}
	child.Mesh = NewMesh("m")
	root.AddChild(child)

	got := MeshBearingDescendants(root)
	if len(got) != 1 {
		t.Fatalf("expected 1 bearer, got %d", len(got))
	}
	pos := got[0].LocalToWorld.Col(3).Vec3()
	if pos != (mgl32.Vec3{1, 2, 0}) {
		t.Errorf("captured position = %v, want {1 2 0}", pos)
	}
}

func TestSceneFindAndCount(t *testing.T) {
	s := &Scene{}
	r1 := NewObject("r1")
	r1.AddChild(NewObject("x"))
	s.Add(r1)
	s.Add(NewObject("r2"))

	if s.ObjectCount() != 3 {
		t.Errorf("ObjectCount() = %d, want 3", s.ObjectCount())
	}
	if s.Find("x") == nil || s.Find("missing") != nil {
		t.Error("Find returned unexpected result")
	}
}

func TestInstanceIDsAreUnique(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 100; i++ {
		id := NewMesh("m").InstanceID()
		if id <= 0 || seen[id] {
			t.Fatalf("id %d not unique or not positive", id)
		}
		seen[id] = true
	}
	var zero Mesh
	if zero.InstanceID() == 0 {
		t.Error("zero mesh should be assigned an id lazily")
	}
}

func TestParseIndexFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    IndexFormat
		wantErr bool
	}{
		{"16", IndexFormat16, false},
		{"uint16", IndexFormat16, false},
		{"", IndexFormat32, false},
		{"32", IndexFormat32, false},
		{"UINT32", IndexFormat32, false},
		{"8", IndexFormat32, true},
	}
	for _, tt := range tests {
		got, err := ParseIndexFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIndexFormat(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseIndexFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if IndexFormat16.MaxVertices() != 65535 {
		t.Error("16-bit max vertices should be 65535")
	}
}
