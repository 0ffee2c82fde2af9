package renderer

import (
	"math"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
)

// CameraConfig describes the viewport the camera projects onto
type CameraConfig struct {
	Origin         mathpkg.Vec3 `yaml:"origin" mapstructure:"origin"`                   // Eye point
	AspectRatio    float64      `yaml:"aspect_ratio" mapstructure:"aspect_ratio"`       // Viewport width / height
	ViewportHeight float64      `yaml:"viewport_height" mapstructure:"viewport_height"` // Height of the image plane in world units
	FocalLength    float64      `yaml:"focal_length" mapstructure:"focal_length"`       // Distance from eye to image plane along -Z
}

// DefaultCameraConfig returns the 16:9 camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin:         mathpkg.NewVec3(0, 0, 0),
		AspectRatio:    16.0 / 9.0,
		ViewportHeight: 2.0,
		FocalLength:    1.0,
	}
}

// Validate rejects configs that produce a degenerate viewport
func (c CameraConfig) Validate() error {
	positive := func(name string, v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return errorsmod.Wrapf(core.ErrInvalidScene, "camera %s must be positive, got %g", name, v)
		}
		return nil
	}
	if err := positive("aspect ratio", c.AspectRatio); err != nil {
		return err
	}
	if err := positive("viewport height", c.ViewportHeight); err != nil {
		return err
	}
	return positive("focal length", c.FocalLength)
}

// Camera generates rays for rendering
type Camera struct {
	origin          mathpkg.Vec3
	lowerLeftCorner mathpkg.Vec3
	horizontal      mathpkg.Vec3
	vertical        mathpkg.Vec3
}

// NewCamera derives the viewport basis from config
func NewCamera(config CameraConfig) *Camera {
	viewportWidth := config.AspectRatio * config.ViewportHeight

	origin := config.Origin
	horizontal := mathpkg.NewVec3(viewportWidth, 0, 0)
	vertical := mathpkg.NewVec3(0, config.ViewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(mathpkg.NewVec3(0, 0, config.FocalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1.
// v is measured from the bottom edge of the viewport upward.
func (c *Camera) GetRay(u, v float64) mathpkg.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return mathpkg.NewRay(c.origin, direction)
}

// Origin returns the eye point every ray starts from
func (c *Camera) Origin() mathpkg.Vec3 { return c.origin }

// Horizontal returns the vector spanning the viewport from left to right
func (c *Camera) Horizontal() mathpkg.Vec3 { return c.horizontal }

// Vertical returns the vector spanning the viewport from bottom to top
func (c *Camera) Vertical() mathpkg.Vec3 { return c.vertical }

// LowerLeftCorner returns the viewport corner that u = 0, v = 0 maps to
func (c *Camera) LowerLeftCorner() mathpkg.Vec3 { return c.lowerLeftCorner }
