// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import "github.com/go-gl/mathgl/mgl32"

// Transform is a translation, rotation and non-uniform scale applied in
// scale, rotate, translate order.
//
// The zero Transform has a zero rotation quaternion and zero scale; use
// Identity as the starting point.
type Transform struct {
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// FromTranslation returns an identity transform moved by v.
func FromTranslation(v mgl32.Vec3) Transform {
	t := Identity()
	t.Translation = v
	return t
}

// FromRotation returns an identity transform rotated by q.
func FromRotation(q mgl32.Quat) Transform {
	t := Identity()
	t.Rotation = q
	return t
}

// FromScale returns an identity transform scaled by v.
func FromScale(v mgl32.Vec3) Transform {
	t := Identity()
	t.Scale = v
	return t
}

// FromUniformScale returns an identity transform scaled by s on every axis.
func FromUniformScale(s float32) Transform {
	return FromScale(mgl32.Vec3{s, s, s})
}

// WithTranslation returns t moved to v.
func (t Transform) WithTranslation(v mgl32.Vec3) Transform {
	t.Translation = v
	return t
}

// WithRotation returns t with rotation q.
func (t Transform) WithRotation(q mgl32.Quat) Transform {
	t.Rotation = q
	return t
}

// WithScale returns t with scale v.
func (t Transform) WithScale(v mgl32.Vec3) Transform {
	t.Scale = v
	return t
}

// RotateZ returns t additionally rotated by angle radians about the Z axis.
func (t Transform) RotateZ(angle float32) Transform {
	t.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1}).Mul(t.Rotation)
	return t
}

// Matrix returns the column-major model matrix T * R * S.
func (t Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.Translation.Elem())
	rot := t.Rotation.Normalize().Mat4()
	sc := mgl32.Scale3D(t.Scale.Elem())
	return tr.Mul4(rot).Mul4(sc)
}

// MulVec3 applies t to the point v.
func (t Transform) MulVec3(v mgl32.Vec3) mgl32.Vec3 {
	v = mgl32.Vec3{v[0] * t.Scale[0], v[1] * t.Scale[1], v[2] * t.Scale[2]}
	v = t.Rotation.Normalize().Rotate(v)
	return v.Add(t.Translation)
}

// Mul composes t with child so that the result applies child first and
// then t. Scale is combined component-wise.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: t.MulVec3(child.Translation),
		Rotation:    t.Rotation.Mul(child.Rotation),
		Scale: mgl32.Vec3{
			t.Scale[0] * child.Scale[0],
			t.Scale[1] * child.Scale[1],
			t.Scale[2] * child.Scale[2],
		},
	}
}
