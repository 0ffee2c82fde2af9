package scene

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	Sphere       *geometry.Sphere // The only object in the scene; nil renders sky only
	Shading      renderer.Shading

	// AspectRatioFixed is set when a scene file names camera.aspect_ratio.
	// The image height then follows the camera instead of the render settings.
	AspectRatioFixed bool
}

// New creates a scene from a camera config and shading. A nil sphere gives a
// sky-only scene.
func New(cameraConfig renderer.CameraConfig, shading renderer.Shading, sphere *geometry.Sphere) *Scene {
	s := &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Shading:      shading,
	}
	if sphere != nil {
		s.SetSphere(*sphere)
	}
	return s
}

// SetSphere places sphere in the scene, replacing any previous one
func (s *Scene) SetSphere(sphere geometry.Sphere) {
	s.Sphere = &sphere
}

// ClearSphere removes the sphere, leaving only the sky
func (s *Scene) ClearSphere() {
	s.Sphere = nil
}

// SetAspectRatio changes the viewport aspect ratio and rebuilds the camera
func (s *Scene) SetAspectRatio(aspectRatio float64) error {
	cfg := s.CameraConfig
	cfg.AspectRatio = aspectRatio
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.CameraConfig = cfg
	s.Camera = renderer.NewCamera(cfg)
	return nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetShading returns how hits and misses are colored
func (s *Scene) GetShading() renderer.Shading {
	return s.Shading
}

// HitAny reports whether the ray intersects the sphere
func (s *Scene) HitAny(ray mathpkg.Ray) bool {
	return s.Sphere != nil && s.Sphere.Intersects(ray)
}

// Validate checks the camera and the sphere
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return errorsmod.Wrap(core.ErrInvalidScene, "no camera")
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return err
	}
	if s.Sphere != nil {
		if err := s.Sphere.Validate(); err != nil {
			return errorsmod.Wrap(err, "sphere")
		}
	}
	return nil
}
