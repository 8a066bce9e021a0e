// Package transform holds the handful of 4x4 matrix helpers the renderer needs.
//
// Matrices are mgl32.Mat4 values: column-major, so the translation lives in
// elements 12, 13 and 14.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Identity returns the 4x4 identity matrix.
func Identity() mgl32.Mat4 {
	return mgl32.Ident4()
}

// Translate returns m * T(v).
func Translate(m mgl32.Mat4, v mgl32.Vec3) mgl32.Mat4 {
	return m.Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
}

// TranslateInPlace adds v to the translation column of m without multiplying.
//
// This matches Translate only when the upper 3x3 of m is the identity. For a
// rotated or scaled m the offset is applied in parent space instead of local
// space. The fan's model-view starts from the identity, so it is unaffected.
func TranslateInPlace(m mgl32.Mat4, v mgl32.Vec3) mgl32.Mat4 {
	m[12] += v[0]
	m[13] += v[1]
	m[14] += v[2]
	return m
}

// RotateZ returns m * Rz(rad).
func RotateZ(m mgl32.Mat4, rad float32) mgl32.Mat4 {
	return m.Mul4(mgl32.HomogRotate3DZ(rad))
}

// Scale returns m * S(s, s, s).
func Scale(m mgl32.Mat4, s float32) mgl32.Mat4 {
	return m.Mul4(mgl32.Scale3D(s, s, s))
}

// OrthoBox maps the box [left,right]x[bottom,top]x[near,far] onto normalized
// device coordinates.
func OrthoBox(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return mgl32.Ortho(left, right, bottom, top, near, far)
}

// Ortho is OrthoBox over the symmetric cube of the given half extent.
func Ortho(halfExtent float32) mgl32.Mat4 {
	return OrthoBox(-halfExtent, halfExtent, -halfExtent, halfExtent, -halfExtent, halfExtent)
}
