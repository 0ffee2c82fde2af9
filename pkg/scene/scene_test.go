package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
)

func TestScene_HitAny(t *testing.T) {
	forward := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, -1))
	up := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 1, 0))

	tests := []struct {
		name       string
		scene      *Scene
		ray        mathpkg.Ray
		expectsHit bool
	}{
		{"sphere scene forward", NewSphereScene(), forward, true},
		{"sphere scene up", NewSphereScene(), up, false},
		{"sky scene forward", NewSkyScene(), forward, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scene.HitAny(tt.ray); got != tt.expectsHit {
				t.Errorf("Expected hit=%t, got %t", tt.expectsHit, got)
			}
		})
	}
}

func TestScene_SetSphere(t *testing.T) {
	s := NewSphereScene()
	up := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 1, 0))
	forward := mathpkg.NewRay(mathpkg.NewVec3(0, 0, 0), mathpkg.NewVec3(0, 0, -1))

	s.SetSphere(geometry.NewSphere(mathpkg.NewVec3(0, 3, 0), 1))
	if !s.HitAny(up) {
		t.Error("Expected hit after moving the sphere above the camera")
	}
	if s.HitAny(forward) {
		t.Error("Expected the replaced sphere to be gone")
	}

	s.ClearSphere()
	if s.HitAny(up) {
		t.Error("Expected sky-only scene to miss")
	}
}

func TestNew_CopiesSphere(t *testing.T) {
	sphere := geometry.NewSphere(mathpkg.NewVec3(0, 0, -1), 0.5)
	s := New(renderer.DefaultCameraConfig(), renderer.DefaultShading(), &sphere)

	sphere.Radius = 0
	if s.Sphere.Radius != 0.5 {
		t.Errorf("Expected scene to keep its own copy, got radius %f", s.Sphere.Radius)
	}
}

func TestScene_Validate(t *testing.T) {
	if err := NewSphereScene().Validate(); err != nil {
		t.Errorf("Expected built-in scene to be valid, got %v", err)
	}
	if err := NewSkyScene().Validate(); err != nil {
		t.Errorf("Expected sky scene to be valid, got %v", err)
	}

	bad := NewSphereScene()
	bad.SetSphere(geometry.NewSphere(mathpkg.NewVec3(0, 0, 0), -1))
	if err := bad.Validate(); !errors.Is(err, core.ErrNegativeRadius) {
		t.Errorf("Expected ErrNegativeRadius, got %v", err)
	}

	cfg := renderer.DefaultCameraConfig()
	cfg.FocalLength = 0
	if err := New(cfg, renderer.DefaultShading(), nil).Validate(); !errors.Is(err, core.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene for zero focal length, got %v", err)
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range BuiltinNames() {
		s, err := Builtin(name)
		if err != nil {
			t.Errorf("Builtin(%q) failed: %v", name, err)
			continue
		}
		if s.GetCamera() == nil {
			t.Errorf("Builtin(%q) has no camera", name)
		}
	}

	if _, err := Builtin("cornell"); !errors.Is(err, core.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene for unknown scene, got %v", err)
	}
}

func TestScene_SetAspectRatio(t *testing.T) {
	s := NewSphereScene()
	if err := s.SetAspectRatio(1); err != nil {
		t.Fatalf("SetAspectRatio failed: %v", err)
	}
	if s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected aspect ratio 1, got %f", s.CameraConfig.AspectRatio)
	}
	if got := s.GetCamera().Horizontal(); got != mathpkg.NewVec3(2, 0, 0) {
		t.Errorf("Expected camera rebuilt with a square viewport, got horizontal %v", got)
	}

	if err := s.SetAspectRatio(0); !errors.Is(err, core.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
	if s.CameraConfig.AspectRatio != 1 {
		t.Errorf("Expected rejected ratio to leave the camera alone, got %f", s.CameraConfig.AspectRatio)
	}
}
