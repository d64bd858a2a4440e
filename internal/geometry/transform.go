package geometry

import "github.com/go-gl/mathgl/mgl32"

// ComposeTRS builds the matrix T * R * S.
func ComposeTRS(t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(t[0], t[1], t[2]).
		Mul4(r.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Decompose splits an affine matrix into translation, rotation and scale.
// A mirroring matrix gets a negative X scale. Shear is lost.
func Decompose(m mgl32.Mat4) (t mgl32.Vec3, r mgl32.Quat, s mgl32.Vec3) {
	t = m.Col(3).Vec3()

	x := m.Col(0).Vec3()
	y := m.Col(1).Vec3()
	z := m.Col(2).Vec3()
	s = mgl32.Vec3{x.Len(), y.Len(), z.Len()}
	if m.Mat3().Det() < 0 {
		s[0] = -s[0]
	}

	if s[0] == 0 || s[1] == 0 || s[2] == 0 {
		return t, mgl32.QuatIdent(), s
	}

	x = x.Mul(1 / s[0])
	y = y.Mul(1 / s[1])
	z = z.Mul(1 / s[2])
	rot := mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
	r = mgl32.Mat4ToQuat(rot).Normalize()
	return t, r, s
}

// NormalMatrix returns the inverse transpose of m's upper 3x3. Singular
// matrices fall back to the plain 3x3 part.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	m3 := m.Mat3()
	if m3.Det() == 0 {
		return m3
	}
	return m3.Inv().Transpose()
}

// TransformNormal applies a normal matrix and renormalises the result.
func TransformNormal(nm mgl32.Mat3, n [3]float32) [3]float32 {
	v := nm.Mul3x1(mgl32.Vec3(n))
	if l := v.Len(); l > 0 {
		v = v.Mul(1 / l)
	}
	return [3]float32(v)
}

// TransformPoint applies an affine matrix to a point.
func TransformPoint(m mgl32.Mat4, p [3]float32) [3]float32 {
	return [3]float32(mgl32.TransformCoordinate(mgl32.Vec3(p), m))
}

// IsMirroring reports whether m flips handedness.
func IsMirroring(m mgl32.Mat4) bool {
	return m.Mat3().Det() < 0
}
