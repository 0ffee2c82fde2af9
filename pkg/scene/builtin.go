package scene

import (
	"sort"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

// NewSphereScene creates the red ball scene: a sphere of radius 0.5 one unit
// in front of the camera, over the sky gradient
func NewSphereScene() *Scene {
	sphere := geometry.NewSphere(mathpkg.NewVec3(0, 0, -1), 0.5)
	return New(renderer.DefaultCameraConfig(), renderer.DefaultShading(), &sphere)
}

// NewSkyScene creates an empty scene that renders only the sky gradient
func NewSkyScene() *Scene {
	return New(renderer.DefaultCameraConfig(), renderer.DefaultShading(), nil)
}

var builtins = map[string]struct {
	description string
	create      func() *Scene
}{
	"sphere": {"Red sphere in front of a sky gradient", NewSphereScene},
	"sky":    {"Sky gradient only, no geometry", NewSkyScene},
}

// Builtin returns the built-in scene with the given name
func Builtin(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "unknown built-in scene %q", name)
	}
	return b.create(), nil
}

// BuiltinNames returns the names of all built-in scenes, sorted
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
