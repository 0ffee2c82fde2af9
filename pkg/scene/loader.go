package scene

import (
	"math"
	"os"
	"reflect"

	errorsmod "cosmossdk.io/errors"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

// Description is the on-disk form of a scene.
//
//	camera:
//	  aspect_ratio: 1.7777777777777777
//	  viewport_height: 2
//	  focal_length: 1
//	  origin: {x: 0, y: 0, z: 0}
//	shading:
//	  foreground: {r: 255, g: 0, b: 0}
//	  brightness: 2
//	sphere:
//	  center: {x: 0, y: 0, z: -1}
//	  radius: 0.5
//
// Keys left out keep the values of the default camera and shading. Without a
// sphere key the scene is sky only.
type Description struct {
	Camera  renderer.CameraConfig `yaml:"camera" mapstructure:"camera"`
	Shading renderer.Shading      `yaml:"shading" mapstructure:"shading"`
	Sphere  *SphereDescription    `yaml:"sphere,omitempty" mapstructure:"sphere"`
}

// SphereDescription is the on-disk form of a sphere
type SphereDescription struct {
	Center mathpkg.Vec3 `yaml:"center" mapstructure:"center"`
	Radius float64      `yaml:"radius" mapstructure:"radius"`
}

// DefaultDescription returns the default camera and shading with no sphere
func DefaultDescription() Description {
	return Description{
		Camera:  renderer.DefaultCameraConfig(),
		Shading: renderer.DefaultShading(),
	}
}

// Scene builds and validates the scene the description names
func (d Description) Scene() (*Scene, error) {
	var sphere *geometry.Sphere
	if d.Sphere != nil {
		sp := geometry.NewSphere(d.Sphere.Center, d.Sphere.Radius)
		sphere = &sp
	}

	s := New(d.Camera, d.Shading, sphere)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Describe returns the on-disk form of the scene
func (s *Scene) Describe() Description {
	d := Description{
		Camera:  s.CameraConfig,
		Shading: s.Shading,
	}
	if s.Sphere != nil {
		d.Sphere = &SphereDescription{Center: s.Sphere.Center, Radius: s.Sphere.Radius}
	}
	return d
}

// Load reads a YAML scene file. Unknown keys are rejected.
func Load(path string) (*Scene, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "read %s: %s", path, err)
	}

	desc := DefaultDescription()
	strict := func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			channelRangeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
	if err := v.Unmarshal(&desc, strict); err != nil {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "parse %s: %s", path, err)
	}

	s, err := desc.Scene()
	if err != nil {
		return nil, errorsmod.Wrap(err, path)
	}
	s.AspectRatioFixed = v.IsSet("camera.aspect_ratio")
	return s, nil
}

// channelRangeHook rejects numbers that do not fit a color channel. Weakly
// typed decoding would otherwise truncate 300 to 44 and -1 to 255.
func channelRangeHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to.Kind() != reflect.Uint8 {
		return data, nil
	}

	var n float64
	value := reflect.ValueOf(data)
	switch value.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = float64(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n = float64(value.Uint())
	case reflect.Float32, reflect.Float64:
		n = value.Float()
	default:
		return data, nil
	}

	if !(n >= 0 && n <= 255) || n != math.Trunc(n) {
		return nil, errorsmod.Wrapf(core.ErrInvalidScene, "color channel %v outside 0-255", data)
	}
	return data, nil
}

// Save writes the scene as YAML
func Save(path string, s *Scene) error {
	data, err := yaml.Marshal(s.Describe())
	if err != nil {
		return errorsmod.Wrapf(core.ErrInvalidScene, "encode: %s", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errorsmod.Wrapf(core.ErrSinkUnavailable, "write %s: %s", path, err)
	}
	return nil
}
