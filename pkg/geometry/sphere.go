package geometry

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center mathpkg.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center mathpkg.Vec3, radius float64) Sphere {
	return Sphere{
		Center: center,
		Radius: radius,
	}
}

// Validate reports spheres with a negative or NaN radius. A zero radius is a point.
func (s Sphere) Validate() error {
	if !(s.Radius >= 0) {
		return errorsmod.Wrapf(core.ErrNegativeRadius, "radius %g", s.Radius)
	}
	return nil
}

// Intersects tests if a ray crosses the sphere anywhere ahead of its origin.
//
// With oc = origin - center the ray meets the sphere where a·t² + b·t + c = 0:
//
//	a = |d|², b = 2·(d·oc), c = |oc|² - r²
//
// A discriminant D <= 0 is a miss, tangent rays included. Otherwise the ray hits
// when the far root (-b + √D) / 2a is positive, i.e. √D - b > 0. D > 0 implies
// a > 0, so dividing by a never changes the sign. A zero direction always has
// D = 0 and misses.
func (s Sphere) Intersects(ray mathpkg.Ray) bool {
	oc := ray.Origin.Subtract(s.Center)

	a := ray.Direction.LengthSquared()
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4.0*a*c
	if !(discriminant > 0) {
		return false
	}

	return math.Sqrt(discriminant)-b > 0
}
