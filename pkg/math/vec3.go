package math

import (
	"fmt"
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Negate returns the vector pointing the opposite way
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Scale returns scalar·v. It is Multiply with the operands swapped.
func Scale(scalar float64, v Vec3) Vec3 {
	return v.Multiply(scalar)
}

// Divide returns the vector divided by a scalar.
// The caller guarantees scalar != 0; a zero divisor yields infinities or NaN.
func (v Vec3) Divide(scalar float64) Vec3 {
	inv := 1.0 / scalar
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// AddAssign adds other to v in place
func (v *Vec3) AddAssign(other Vec3) {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
}

// SubtractAssign subtracts other from v in place
func (v *Vec3) SubtractAssign(other Vec3) {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
}

// MultiplyAssign scales v in place
func (v *Vec3) MultiplyAssign(scalar float64) {
	v.X *= scalar
	v.Y *= scalar
	v.Z *= scalar
}

// DivideAssign divides v in place. Same precondition as Divide.
func (v *Vec3) DivideAssign(scalar float64) {
	inv := 1.0 / scalar
	v.X *= inv
	v.Y *= inv
	v.Z *= inv
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product v × other
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// RhoSquared returns the squared distance from the z axis
func (v Vec3) RhoSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Rho returns the distance from the z axis (the cylindrical radius)
func (v Vec3) Rho() float64 {
	return math.Sqrt(v.RhoSquared())
}

// Unit returns the vector divided by its own length.
// Zero and non-finite lengths fail with core.ErrZeroLength instead of producing NaN.
func (v Vec3) Unit() (Vec3, error) {
	length := v.Length()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		return Vec3{}, errorsmod.Wrapf(core.ErrZeroLength, "cannot normalize %s", v)
	}
	return v.Divide(length), nil
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned for vectors Unit rejects.
func (v Vec3) Normalize() Vec3 {
	u, err := v.Unit()
	if err != nil {
		return Vec3{0, 0, 0}
	}
	return u
}

// NormalizeAssign normalizes v in place with the same policy as Normalize
func (v *Vec3) NormalizeAssign() {
	*v = v.Normalize()
}

// String returns the debug form <x, y, z>
func (v Vec3) String() string {
	return fmt.Sprintf("<%f, %f, %f>", v.X, v.Y, v.Z)
}
