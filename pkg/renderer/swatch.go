package renderer

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/color"
	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// RenderSwatch writes a size×size color test pattern to sink: red ramps up
// left to right, green ramps up top to bottom, and a dark blue scaled by 64 is
// added to every pixel.
func RenderSwatch(sink Sink, size int) error {
	if size < 2 {
		return errorsmod.Wrapf(core.ErrInvalidDimensions, "swatch size %d, need at least 2", size)
	}

	if err := sink.Begin(size, size); err != nil {
		return sinkError(err, "write header")
	}

	factor := 255.0 / float64(size-1)
	blue := color.New(0, 0, 1).Scale(64)

	for y := 0; y < size; y++ {
		g := uint8(float64(y) * factor)
		for x := 0; x < size; x++ {
			r := uint8(float64(x) * factor)
			c := color.New(r, g, 0).Add(blue)
			if err := sink.WritePixel(c); err != nil {
				return sinkError(err, "row %d column %d", y, x)
			}
		}
	}

	if err := sink.Flush(); err != nil {
		return sinkError(err, "flush")
	}
	return nil
}
