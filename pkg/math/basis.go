package math

// Basis is an orthonormal frame with Up × Forward = Right. The invariant
// is not enforced for arbitrary assignments; use the constructors.
type Basis struct {
	Forward Vec3
	Right   Vec3
	Up      Vec3
}

// IdentityBasis returns a frame facing +Z with +Y up.
func IdentityBasis() Basis {
	return Basis{
		Forward: Vec3{0, 0, 1},
		Right:   Vec3{1, 0, 0},
		Up:      Vec3{0, 1, 0},
	}
}

// BasisFromYaw returns a frame rotated yaw radians around +Y.
// Yaw 0 faces +Z, positive yaw turns toward +X.
func BasisFromYaw(yaw float32) Basis {
	s := Sin(yaw)
	c := Cos(yaw)
	return Basis{
		Forward: Vec3{s, 0, c},
		Right:   Vec3{c, 0, -s},
		Up:      Vec3{0, 1, 0},
	}
}

// BasisFromNormal builds a frame whose Up is the given (normalized) normal
// and whose Forward is forwardHint projected into the plane of the normal.
// Falls back to the identity frame when the hint is parallel to the normal.
func BasisFromNormal(normal, forwardHint Vec3) Basis {
	up := normal.Normalize()
	if up.Length() == 0 {
		up = Vec3{0, 1, 0}
	}

	fwd := forwardHint.Sub(up.Scale(forwardHint.Dot(up)))
	if fwd.Length() < 1e-6 {
		// Hint is (anti)parallel to the normal; pick an arbitrary tangent.
		fwd = Vec3{0, 0, 1}.Sub(up.Scale(up.Z))
		if fwd.Length() < 1e-6 {
			fwd = Vec3{1, 0, 0}
		}
	}
	fwd = fwd.Normalize()
	right := up.Cross(fwd).Normalize()

	return Basis{Forward: fwd, Right: right, Up: up}
}

// BasisFromQuat returns the frame obtained by rotating the identity
// frame by q.
func BasisFromQuat(q Quat) Basis {
	return Basis{
		Forward: q.Rotate(Vec3{0, 0, 1}),
		Right:   q.Rotate(Vec3{1, 0, 0}),
		Up:      q.Rotate(Vec3{0, 1, 0}),
	}
}

// Quat converts the frame to a rotation quaternion (Shepperd's method).
func (b Basis) Quat() Quat {
	r, u, f := b.Right, b.Up, b.Forward

	trace := r.X + u.Y + f.Z
	switch {
	case trace > 0:
		s := Sqrt(trace+1) * 2
		return Quat{
			W: s / 4,
			X: (u.Z - f.Y) / s,
			Y: (f.X - r.Z) / s,
			Z: (r.Y - u.X) / s,
		}
	case r.X > u.Y && r.X > f.Z:
		s := Sqrt(1+r.X-u.Y-f.Z) * 2
		return Quat{
			W: (u.Z - f.Y) / s,
			X: s / 4,
			Y: (u.X + r.Y) / s,
			Z: (f.X + r.Z) / s,
		}
	case u.Y > f.Z:
		s := Sqrt(1+u.Y-r.X-f.Z) * 2
		return Quat{
			W: (f.X - r.Z) / s,
			X: (u.X + r.Y) / s,
			Y: s / 4,
			Z: (f.Y + u.Z) / s,
		}
	default:
		s := Sqrt(1+f.Z-r.X-u.Y) * 2
		return Quat{
			W: (r.Y - u.X) / s,
			X: (f.X + r.Z) / s,
			Y: (f.Y + u.Z) / s,
			Z: s / 4,
		}
	}
}

// Mat4 returns the rotation matrix mapping local axes to world axes.
func (b Basis) Mat4() Mat4 {
	return Mat4{
		b.Right.X, b.Right.Y, b.Right.Z, 0,
		b.Up.X, b.Up.Y, b.Up.Z, 0,
		b.Forward.X, b.Forward.Y, b.Forward.Z, 0,
		0, 0, 0, 1,
	}
}
