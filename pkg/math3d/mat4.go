package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, OpenGL style.
//
//	| 0  4  8  12 |
//	| 1  5  9  13 |
//	| 2  6  10 14 |
//	| 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = s, s, s
	return m
}

// RotateX rotates around the X axis by angle radians.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotateY rotates around the Y axis by angle radians.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// RotateZ rotates around the Z axis by angle radians.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// EulerDegrees builds the body rotation for roll (X), pitch (Y) and yaw (Z)
// given in degrees. Roll is applied first, yaw last.
func EulerDegrees(roll, pitch, yaw float64) Mat4 {
	return RotateZ(Radians(yaw)).
		Mul(RotateY(Radians(pitch))).
		Mul(RotateX(Radians(roll)))
}

// Perspective creates a perspective projection matrix. fovy is the vertical
// field of view in radians.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovy/2)
	nf := 1.0 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row+k*4] * b[k+col*4]
			}
			m[row+col*4] = sum
		}
	}
	return m
}

// MulVec3 transforms v as a point (w=1).
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec4(Vec4{v.X, v.Y, v.Z, 1}).PerspectiveDivide()
}

// MulVec3Dir transforms v as a direction (w=0, no translation).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Translation extracts the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Quaternion returns the rotation part of a rigid transform as a unit
// quaternion (x, y, z, w). Scale must be uniform.
func (m Mat4) Quaternion() [4]float64 {
	s := V3(m[0], m[1], m[2]).Len()
	if s == 0 {
		return [4]float64{0, 0, 0, 1}
	}
	r00, r01, r02 := m[0]/s, m[4]/s, m[8]/s
	r10, r11, r12 := m[1]/s, m[5]/s, m[9]/s
	r20, r21, r22 := m[2]/s, m[6]/s, m[10]/s

	var q [4]float64
	trace := r00 + r11 + r22
	switch {
	case trace > 0:
		k := 0.5 / math.Sqrt(trace+1)
		q = [4]float64{(r21 - r12) * k, (r02 - r20) * k, (r10 - r01) * k, 0.25 / k}
	case r00 > r11 && r00 > r22:
		k := 2 * math.Sqrt(1+r00-r11-r22)
		q = [4]float64{0.25 * k, (r01 + r10) / k, (r02 + r20) / k, (r21 - r12) / k}
	case r11 > r22:
		k := 2 * math.Sqrt(1+r11-r00-r22)
		q = [4]float64{(r01 + r10) / k, 0.25 * k, (r12 + r21) / k, (r02 - r20) / k}
	default:
		k := 2 * math.Sqrt(1+r22-r00-r11)
		q = [4]float64{(r02 + r20) / k, (r12 + r21) / k, 0.25 * k, (r10 - r01) / k}
	}
	return q
}
