package renderer

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/df07/go-ppm-raytracer/pkg/color"
	"github.com/df07/go-ppm-raytracer/pkg/core"
	"github.com/df07/go-ppm-raytracer/pkg/geometry"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
)

// MockScene for testing
type MockScene struct {
	camera  *Camera
	shading Shading
	sphere  *geometry.Sphere
}

func (m *MockScene) GetCamera() *Camera  { return m.camera }
func (m *MockScene) GetShading() Shading { return m.shading }
func (m *MockScene) HitAny(ray mathpkg.Ray) bool {
	return m.sphere != nil && m.sphere.Intersects(ray)
}

func newSkyScene() *MockScene {
	return &MockScene{
		camera:  NewCamera(DefaultCameraConfig()),
		shading: DefaultShading(),
	}
}

func newSphereScene() *MockScene {
	scene := newSkyScene()
	sphere := geometry.NewSphere(mathpkg.NewVec3(0, 0, -1), 0.5)
	scene.sphere = &sphere
	return scene
}

// memorySink records pixels and can fail after a number of writes
type memorySink struct {
	width, height int
	pixels        []color.Color
	failAfter     int // fail WritePixel once this many pixels are stored; 0 disables
	began         bool
	flushed       bool
}

func (s *memorySink) Begin(width, height int) error {
	s.width, s.height, s.began = width, height, true
	return nil
}

func (s *memorySink) WritePixel(c color.Color) error {
	if s.failAfter > 0 && len(s.pixels) >= s.failAfter {
		return errors.New("disk full")
	}
	s.pixels = append(s.pixels, c)
	return nil
}

func (s *memorySink) Flush() error {
	s.flushed = true
	return nil
}

func (s *memorySink) at(row, col int) color.Color {
	return s.pixels[row*s.width+col]
}

func TestRender_SkyByteExact(t *testing.T) {
	var buf bytes.Buffer
	rt := NewRaytracer(newSkyScene(), 2, 2)

	if _, err := rt.Render(context.Background(), ppm.NewEncoder(&buf)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := append([]byte("P6\n2 2\n255\n"),
		20, 116, 252, 20, 116, 252,
		70, 144, 252, 70, 144, 252)
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Expected % x, got % x", expected, buf.Bytes())
	}
}

func TestRender_SkyIsBlueish(t *testing.T) {
	sink := &memorySink{}
	if _, err := NewRaytracer(newSkyScene(), 16, 9).Render(context.Background(), sink); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for i, c := range sink.pixels {
		if c.B < c.R || c.B < c.G {
			t.Errorf("Pixel %d: expected blue to dominate, got %v", i, c)
		}
	}
}

func TestRender_SphereScene(t *testing.T) {
	sink := &memorySink{}
	stats, err := NewRaytracer(newSphereScene(), 100, 56).Render(context.Background(), sink)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !sink.began || !sink.flushed {
		t.Error("Expected sink to be opened and flushed")
	}
	if len(sink.pixels) != 100*56 {
		t.Fatalf("Expected %d pixels, got %d", 100*56, len(sink.pixels))
	}

	for _, p := range [][2]int{{27, 49}, {27, 50}, {28, 49}, {28, 50}} {
		if got := sink.at(p[0], p[1]); got != color.Red {
			t.Errorf("Expected center pixel %v to hit, got %v", p, got)
		}
	}
	for _, p := range [][2]int{{0, 0}, {0, 99}, {55, 0}, {55, 99}} {
		if got := sink.at(p[0], p[1]); got == color.Red {
			t.Errorf("Expected corner pixel %v to miss", p)
		}
	}

	if stats.Hits == 0 || stats.Misses == 0 {
		t.Errorf("Expected both hits and misses, got %+v", stats)
	}
	if stats.Hits+stats.Misses != stats.TotalPixels {
		t.Errorf("Hits and misses do not add up: %+v", stats)
	}
}

func TestRender_ParallelMatchesSequential(t *testing.T) {
	var sequential, parallel bytes.Buffer

	if _, err := NewRaytracer(newSphereScene(), 64, 36).Render(context.Background(), ppm.NewEncoder(&sequential)); err != nil {
		t.Fatalf("Sequential render failed: %v", err)
	}
	stats, err := NewRaytracer(newSphereScene(), 64, 36, WithWorkers(4)).Render(context.Background(), ppm.NewEncoder(&parallel))
	if err != nil {
		t.Fatalf("Parallel render failed: %v", err)
	}

	if !bytes.Equal(sequential.Bytes(), parallel.Bytes()) {
		t.Error("Expected parallel output to match sequential output byte for byte")
	}
	if stats.TotalPixels != 64*36 {
		t.Errorf("Expected %d pixels, got %d", 64*36, stats.TotalPixels)
	}
}

func TestRender_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"single row", 10, 1},
		{"single column", 1, 10},
		{"negative", -4, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &memorySink{}
			_, err := NewRaytracer(newSkyScene(), tt.width, tt.height).Render(context.Background(), sink)
			if !errors.Is(err, core.ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got %v", err)
			}
			if sink.began {
				t.Error("Expected nothing written for invalid dimensions")
			}
		})
	}
}

func TestRender_NoCamera(t *testing.T) {
	_, err := NewRaytracer(&MockScene{}, 4, 4).Render(context.Background(), &memorySink{})
	if !errors.Is(err, core.ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene, got %v", err)
	}
}

func TestRender_SinkFailure(t *testing.T) {
	for _, workers := range []int{1, 3} {
		sink := &memorySink{failAfter: 10}
		_, err := NewRaytracer(newSphereScene(), 8, 8, WithWorkers(workers)).Render(context.Background(), sink)
		if !errors.Is(err, core.ErrSinkWrite) {
			t.Errorf("Workers %d: expected ErrSinkWrite, got %v", workers, err)
		}
		if sink.flushed {
			t.Errorf("Workers %d: expected no flush after a failed write", workers)
		}
		if len(sink.pixels) != 10 {
			t.Errorf("Workers %d: expected 10 pixels before failure, got %d", workers, len(sink.pixels))
		}
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		_, err := NewRaytracer(newSphereScene(), 8, 8, WithWorkers(workers)).Render(ctx, &memorySink{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Workers %d: expected context.Canceled, got %v", workers, err)
		}
	}
}

func TestPixelColor(t *testing.T) {
	rt := NewRaytracer(newSphereScene(), 100, 56)

	if c, hit := rt.PixelColor(28, 50); !hit || c != color.Red {
		t.Errorf("Expected hit at the center, got %v (hit=%v)", c, hit)
	}
	if _, hit := rt.PixelColor(56, 0); hit {
		t.Error("Expected miss at the top-left corner")
	}
}
