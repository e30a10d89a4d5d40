package math

// Transform is a rigid placement: rotation followed by translation.
// Scale is carried by shapes, never by transforms.
type Transform struct {
	Translation Vec3
	Rotation    Quat
}

// TransformIdentity returns the identity placement.
func TransformIdentity() Transform {
	return Transform{Rotation: QuatIdentity()}
}

// TransformFromTranslation returns an unrotated placement at p.
func TransformFromTranslation(p Vec3) Transform {
	return Transform{Translation: p, Rotation: QuatIdentity()}
}

// WithRotation returns a copy of t using rotation r.
func (t Transform) WithRotation(r Quat) Transform {
	t.Rotation = r
	return t
}

// Mul composes t (parent) with child, giving the child's placement in the
// parent's space.
func (t Transform) Mul(child Transform) Transform {
	return Transform{
		Translation: t.Translation.Add(t.Rotation.Rotate(child.Translation)),
		Rotation:    t.Rotation.Mul(child.Rotation).Normalize(),
	}
}

// Inverse returns the placement that undoes t.
func (t Transform) Inverse() Transform {
	inv := t.Rotation.Conjugate()
	return Transform{
		Translation: inv.Rotate(t.Translation).Scale(-1),
		Rotation:    inv,
	}
}

// Apply maps a point from local to parent space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Translation.Add(t.Rotation.Rotate(p))
}

// RotateLocal rotates t about one of its own axes. The result stays unit
// length however many times it is applied.
func (t Transform) RotateLocal(axis Vec3, angle float32) Transform {
	t.Rotation = t.Rotation.Mul(QuatFromAxisAngle(axis, angle)).Normalize()
	return t
}

// Matrix returns the 4x4 model matrix of t.
func (t Transform) Matrix() Mat4 {
	return Translate(t.Translation.X, t.Translation.Y, t.Translation.Z).Mul(t.Rotation.ToMat4())
}
