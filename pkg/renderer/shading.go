package renderer

import (
	"github.com/df07/go-ppm-raytracer/pkg/color"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
)

// Shading resolves the final color of a camera ray
type Shading struct {
	Foreground color.Color `yaml:"foreground" mapstructure:"foreground"` // Color of any hit
	Horizon    color.Color `yaml:"horizon" mapstructure:"horizon"`       // Sky color for rays pointing straight down
	Zenith     color.Color `yaml:"zenith" mapstructure:"zenith"`         // Sky color for rays pointing straight up
	Brightness float64     `yaml:"brightness" mapstructure:"brightness"` // Multiplier applied to the blended sky
	Saturate   bool        `yaml:"saturate" mapstructure:"saturate"`     // Clamp scaling instead of wrapping
}

// DefaultShading returns a red foreground over a white to sky-blue gradient at
// double brightness. With Saturate unset the bright end of the gradient wraps.
func DefaultShading() Shading {
	return Shading{
		Foreground: color.Red,
		Horizon:    color.White,
		Zenith:     color.SkyBlue,
		Brightness: 2.0,
	}
}

// Shade returns the foreground on a hit and the sky gradient otherwise
func (s Shading) Shade(ray mathpkg.Ray, hit bool) color.Color {
	if hit {
		return s.Foreground
	}
	return s.Background(ray)
}

// Background returns the sky gradient for the ray direction
func (s Shading) Background(ray mathpkg.Ray) color.Color {
	// A zero direction has no elevation; it lands halfway up the gradient.
	t := 0.5
	if unitDirection, err := ray.Direction.Unit(); err == nil {
		// Map y from [-1, 1] to [0, 1]
		t = 0.5 * (unitDirection.Y + 1.0)
	}

	blend := s.scale(s.Horizon, 1.0-t).Add(s.scale(s.Zenith, t))
	return s.scale(blend, s.Brightness)
}

func (s Shading) scale(c color.Color, factor float64) color.Color {
	if s.Saturate {
		return c.ScaleSaturating(factor)
	}
	return c.Scale(factor)
}
