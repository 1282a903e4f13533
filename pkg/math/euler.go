package math

// Euler holds rotation angles in radians, applied in XYZ order.
type Euler struct {
	X float32 `yaml:"x" json:"x"`
	Y float32 `yaml:"y" json:"y"`
	Z float32 `yaml:"z" json:"z"`
}

// Matrix returns the rotation matrix Rx * Ry * Rz.
func (e Euler) Matrix() Mat4 {
	return RotateX(e.X).Mul(RotateY(e.Y)).Mul(RotateZ(e.Z))
}

// Vec3 returns the angles as a vector, for component-wise interpolation.
func (e Euler) Vec3() Vec3 {
	return Vec3{e.X, e.Y, e.Z}
}

// EulerFromVec3 is the inverse of Euler.Vec3.
func EulerFromVec3(v Vec3) Euler {
	return Euler{v.X, v.Y, v.Z}
}

// Compose builds a translate * rotate * scale matrix.
func Compose(position Vec3, rotation Euler, scale Vec3) Mat4 {
	return Translate(position.X, position.Y, position.Z).
		Mul(rotation.Matrix()).
		Mul(Scale(scale.X, scale.Y, scale.Z))
}
