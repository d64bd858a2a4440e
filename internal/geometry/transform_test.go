package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestComposeTRS_Translation(t *testing.T) {
	m := ComposeTRS(mgl32.Vec3{10.5, 20.75, 5.25}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
	p := TransformPoint(m, [3]float32{1, 2, 3})

	expected := [3]float32{11.5, 22.75, 8.25}
	if p != expected {
		t.Errorf("TransformPoint() = %v, want %v", p, expected)
	}
}

func TestComposeTRS_OrderIsScaleRotateTranslate(t *testing.T) {
	rot := mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 0, 1})
	m := ComposeTRS(mgl32.Vec3{0, 0, 5}, rot, mgl32.Vec3{2, 2, 2})
	p := TransformPoint(m, [3]float32{1, 0, 0})

	// scale to (2,0,0), rotate 90° about Z to (0,2,0), then translate
	want := mgl32.Vec3{0, 2, 5}
	if mgl32.Vec3(p).Sub(want).Len() > 1e-5 {
		t.Errorf("TransformPoint() = %v, want %v", p, want)
	}
}

func TestDecompose_RoundTrip(t *testing.T) {
	tr := mgl32.Vec3{1, -2, 3}
	rot := mgl32.QuatRotate(float32(math.Pi/3), mgl32.Vec3{1, 1, 0}.Normalize())
	sc := mgl32.Vec3{2, 0.5, 3}

	m := ComposeTRS(tr, rot, sc)
	gotT, gotR, gotS := Decompose(m)

	if gotT.Sub(tr).Len() > 1e-5 {
		t.Errorf("translation = %v, want %v", gotT, tr)
	}
	if gotS.Sub(sc).Len() > 1e-5 {
		t.Errorf("scale = %v, want %v", gotS, sc)
	}
	if !matricesClose(ComposeTRS(gotT, gotR, gotS), m, 1e-4) {
		t.Errorf("recomposed matrix differs: %v vs %v", ComposeTRS(gotT, gotR, gotS), m)
	}
}

func TestDecompose_Mirroring(t *testing.T) {
	m := mgl32.Scale3D(-1, 1, 1)
	_, _, s := Decompose(m)
	if s[0] >= 0 {
		t.Errorf("expected negative X scale for mirroring matrix, got %v", s)
	}
	if !IsMirroring(m) {
		t.Error("IsMirroring() = false, want true")
	}
}

func TestTransformNormal_NonUniformScale(t *testing.T) {
	// A 45° slope scaled by 2 along X must tilt its normal towards Y
	m := mgl32.Scale3D(2, 1, 1)
	n := [3]float32{float32(math.Sqrt2 / 2), float32(math.Sqrt2 / 2), 0}
	got := TransformNormal(NormalMatrix(m), n)

	if l := mgl32.Vec3(got).Len(); math.Abs(float64(l-1)) > 1e-5 {
		t.Errorf("normal not unit length: %v", l)
	}
	if got[1] <= got[0] {
		t.Errorf("normal should lean towards Y after stretching X, got %v", got)
	}
}

func TestNormalMatrix_Singular(t *testing.T) {
	m := mgl32.Scale3D(1, 0, 1)
	nm := NormalMatrix(m)
	if nm != m.Mat3() {
		t.Errorf("singular matrix should fall back to its 3x3 part")
	}
}

func matricesClose(a, b mgl32.Mat4, eps float32) bool {
	for i := range a {
		if float32(math.Abs(float64(a[i]-b[i]))) > eps {
			return false
		}
	}
	return true
}
