package core

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace groups every error the raytracer registers.
const Codespace = "raytracer"

// Registered errors. Code 1 is reserved by the errors package for internal errors.
var (
	// ErrZeroLength is returned when a vector with no usable magnitude is normalized
	ErrZeroLength = errorsmod.Register(Codespace, 2, "zero-length vector")

	// ErrNegativeRadius is returned for spheres whose radius is negative or NaN
	ErrNegativeRadius = errorsmod.Register(Codespace, 3, "negative sphere radius")

	// ErrInvalidDimensions is returned for images the camera mapping cannot cover
	ErrInvalidDimensions = errorsmod.Register(Codespace, 4, "invalid image dimensions")

	// ErrSinkUnavailable means the output stream could not be opened
	ErrSinkUnavailable = errorsmod.Register(Codespace, 5, "image sink unavailable")

	// ErrSinkWrite means the output stream rejected a header or pixel
	ErrSinkWrite = errorsmod.Register(Codespace, 6, "image sink write failed")

	// ErrIncompleteImage means the pixel count does not match the header
	ErrIncompleteImage = errorsmod.Register(Codespace, 7, "incomplete image")

	// ErrInvalidScene is returned for scene descriptions that cannot be rendered
	ErrInvalidScene = errorsmod.Register(Codespace, 8, "invalid scene")

	// ErrInvalidConfig is returned for run configurations that fail validation
	ErrInvalidConfig = errorsmod.Register(Codespace, 9, "invalid config")
)
