package color

import (
	"fmt"
	"io"
	"math"
)

// Color is an 8-bit RGB triple. The zero value is black.
type Color struct {
	R, G, B uint8
}

// Named colors used by the built-in scenes
var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Red     = Color{255, 0, 0}
	SkyBlue = Color{128, 180, 255}
)

// New creates a color from its channels
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Add returns the per-channel sum, saturating at 255
func (c Color) Add(other Color) Color {
	return Color{
		R: saturatingAdd(c.R, other.R),
		G: saturatingAdd(c.G, other.G),
		B: saturatingAdd(c.B, other.B),
	}
}

func saturatingAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum >= 255 {
		return 255
	}
	return uint8(sum)
}

// Scale multiplies every channel by factor. The product is truncated toward zero
// and only its low 8 bits are kept, so factors above 1 or below 0 wrap around
// instead of saturating. Rendered output depends on this.
func (c Color) Scale(factor float64) Color {
	return Color{
		R: wrapChannel(factor * float64(c.R)),
		G: wrapChannel(factor * float64(c.G)),
		B: wrapChannel(factor * float64(c.B)),
	}
}

// ScaleSaturating multiplies every channel by factor and clamps to [0, 255]
func (c Color) ScaleSaturating(factor float64) Color {
	return Color{
		R: clampChannel(factor * float64(c.R)),
		G: clampChannel(factor * float64(c.G)),
		B: clampChannel(factor * float64(c.B)),
	}
}

func wrapChannel(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return uint8(int64(v))
}

func clampChannel(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Luminance returns the Rec. 709 luma of the color on a 0-255 scale
func (c Color) Luminance() float64 {
	return 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
}

// Write emits the red, green and blue bytes in that order
func (c Color) Write(w io.Writer) error {
	_, err := w.Write([]byte{c.R, c.G, c.B})
	return err
}

// String returns the color as rgb(r, g, b)
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
