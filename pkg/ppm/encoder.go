// Package ppm writes frames in the binary PPM (P6) format: a text header
// "P6\n<width> <height>\n255\n" followed by raw RGB triples, row-major.
package ppm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/color"
	"github.com/df07/go-ppm-raytracer/pkg/core"
)

// MaxValue is the channel maximum written in every header
const MaxValue = 255

// Encoder streams one P6 image to an io.Writer
type Encoder struct {
	w       *bufio.Writer
	closer  io.Closer
	width   int
	height  int
	written int
	begun   bool
}

// NewEncoder wraps w in a buffered P6 encoder
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Create opens path for writing and returns an encoder that owns the file.
// Failure to create the file is core.ErrSinkUnavailable.
func Create(path string) (*Encoder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errorsmod.Wrapf(core.ErrSinkUnavailable, "%s: %s", path, err)
	}
	enc := NewEncoder(f)
	enc.closer = f
	return enc, nil
}

// Header returns the P6 header for a width×height image
func Header(width, height int) string {
	return fmt.Sprintf("P6\n%d %d\n%d\n", width, height, MaxValue)
}

// Begin writes the header. It must be called exactly once, before any pixel.
func (e *Encoder) Begin(width, height int) error {
	if e.begun {
		return errorsmod.Wrap(core.ErrSinkWrite, "header already written")
	}
	if width <= 0 || height <= 0 {
		return errorsmod.Wrapf(core.ErrInvalidDimensions, "%dx%d", width, height)
	}
	if _, err := e.w.WriteString(Header(width, height)); err != nil {
		return errorsmod.Wrapf(core.ErrSinkWrite, "header: %s", err)
	}
	e.width, e.height, e.begun = width, height, true
	return nil
}

// WritePixel writes the three channel bytes of c
func (e *Encoder) WritePixel(c color.Color) error {
	if !e.begun {
		return errorsmod.Wrap(core.ErrSinkWrite, "pixel written before header")
	}
	if e.written == e.width*e.height {
		return errorsmod.Wrapf(core.ErrIncompleteImage, "more than %d pixels", e.written)
	}
	if err := c.Write(e.w); err != nil {
		return errorsmod.Wrapf(core.ErrSinkWrite, "pixel %d: %s", e.written, err)
	}
	e.written++
	return nil
}

// Flush writes any buffered bytes and checks that the image is complete
func (e *Encoder) Flush() error {
	if err := e.w.Flush(); err != nil {
		return errorsmod.Wrapf(core.ErrSinkWrite, "flush: %s", err)
	}
	if !e.begun {
		return errorsmod.Wrap(core.ErrIncompleteImage, "no header written")
	}
	if want := e.width * e.height; e.written != want {
		return errorsmod.Wrapf(core.ErrIncompleteImage, "wrote %d of %d pixels", e.written, want)
	}
	return nil
}

// Written returns the number of pixels written so far
func (e *Encoder) Written() int {
	return e.written
}

// Close flushes buffered bytes and closes the underlying file, if the encoder
// owns one. An incomplete image is still reported.
func (e *Encoder) Close() error {
	flushErr := e.Flush()
	if e.closer == nil {
		return flushErr
	}
	closeErr := e.closer.Close()
	e.closer = nil
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return errorsmod.Wrapf(core.ErrSinkWrite, "close: %s", closeErr)
	}
	return nil
}
