package renderer

import (
	"context"
	"errors"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/df07/go-ppm-raytracer/pkg/color"
	"github.com/df07/go-ppm-raytracer/pkg/core"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetShading() Shading
	HitAny(ray mathpkg.Ray) bool
}

// Sink receives a frame as an ordered pixel stream.
// Begin is called once before the first pixel and Flush once after the last.
type Sink interface {
	Begin(width, height int) error
	WritePixel(c color.Color) error
	Flush() error
}

// Option configures a Raytracer
type Option func(*Raytracer)

// WithWorkers renders rows on n goroutines. Values below 2 render sequentially.
func WithWorkers(n int) Option {
	return func(rt *Raytracer) { rt.workers = n }
}

// WithLogger sets the logger used for frame progress
func WithLogger(logger zerolog.Logger) Option {
	return func(rt *Raytracer) { rt.logger = logger }
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene   Scene
	width   int
	height  int
	workers int
	logger  zerolog.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int, opts ...Option) *Raytracer {
	rt := &Raytracer{
		scene:   scene,
		width:   width,
		height:  height,
		workers: 1,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Validate checks that the image can be mapped onto the viewport.
// u = n/(W-1) and v = m/(H-1) need at least two columns and two rows.
func (rt *Raytracer) Validate() error {
	if rt.width < 2 || rt.height < 2 {
		return errorsmod.Wrapf(core.ErrInvalidDimensions, "%dx%d, need at least 2x2", rt.width, rt.height)
	}
	if rt.scene == nil || rt.scene.GetCamera() == nil {
		return errorsmod.Wrap(core.ErrInvalidScene, "scene has no camera")
	}
	return nil
}

// PixelColor shades column n of row m, where m counts down from height to 1.
// It reports whether the ray hit the scene.
func (rt *Raytracer) PixelColor(m, n int) (color.Color, bool) {
	u := float64(n) / float64(rt.width-1)
	v := float64(m) / float64(rt.height-1)

	ray := rt.scene.GetCamera().GetRay(u, v)
	hit := rt.scene.HitAny(ray)
	return rt.scene.GetShading().Shade(ray, hit), hit
}

// renderRow shades the row at emission index i (m = height - i)
func (rt *Raytracer) renderRow(i int) ([]color.Color, []bool) {
	m := rt.height - i
	pixels := make([]color.Color, rt.width)
	hits := make([]bool, rt.width)
	for n := 0; n < rt.width; n++ {
		pixels[n], hits[n] = rt.PixelColor(m, n)
	}
	return pixels, hits
}

// Render writes one frame to sink and returns its statistics.
// Rows are emitted from m = height down to 1, columns left to right. A sink
// failure aborts the frame; nothing is retried.
func (rt *Raytracer) Render(ctx context.Context, sink Sink) (RenderStats, error) {
	if err := rt.Validate(); err != nil {
		return RenderStats{}, err
	}

	start := time.Now()
	rt.logger.Debug().
		Int("width", rt.width).
		Int("height", rt.height).
		Int("workers", rt.workers).
		Msg("render started")

	if err := sink.Begin(rt.width, rt.height); err != nil {
		return RenderStats{}, sinkError(err, "write header")
	}

	collector := newStatsCollector(rt.width * rt.height)
	var err error
	if rt.workers > 1 {
		err = rt.renderParallel(ctx, sink, collector)
	} else {
		err = rt.renderSequential(ctx, sink, collector)
	}
	if err != nil {
		return RenderStats{}, err
	}

	if err := sink.Flush(); err != nil {
		return RenderStats{}, sinkError(err, "flush")
	}

	stats := collector.finish(rt.width, rt.height, time.Since(start))
	rt.logger.Info().
		Int("pixels", stats.TotalPixels).
		Int("hits", stats.Hits).
		Float64("mean_luminance", stats.MeanLuminance).
		Dur("elapsed", stats.Elapsed).
		Msg("render finished")

	return stats, nil
}

func (rt *Raytracer) renderSequential(ctx context.Context, sink Sink, collector *statsCollector) error {
	for i := 0; i < rt.height; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		pixels, hits := rt.renderRow(i)
		if err := emitRow(sink, i, pixels, hits, collector); err != nil {
			return err
		}
	}
	return nil
}

// renderParallel computes rows on a worker pool and re-sequences them so the
// sink sees exactly the sequential byte stream
func (rt *Raytracer) renderParallel(ctx context.Context, sink Sink, collector *statsCollector) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(rt, rt.height, rt.workers)
	pool.Start(ctx)
	for i := 0; i < rt.height; i++ {
		pool.SubmitTask(RowTask{Index: i})
	}
	pool.CloseTasks()

	done := make(chan error, 1)
	go func() { done <- pool.Wait() }()

	pending := make(map[int]RowResult)
	next := 0
	for result := range pool.Results() {
		pending[result.Index] = result
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := emitRow(sink, next, r.Pixels, r.Hits, collector); err != nil {
				cancel()
				<-done
				return err
			}
			next++
		}
	}

	if err := <-done; err != nil {
		return err
	}
	if next != rt.height {
		return errorsmod.Wrapf(core.ErrIncompleteImage, "emitted %d of %d rows", next, rt.height)
	}
	return nil
}

func emitRow(sink Sink, i int, pixels []color.Color, hits []bool, collector *statsCollector) error {
	for n, c := range pixels {
		if err := sink.WritePixel(c); err != nil {
			return sinkError(err, "row %d column %d", i, n)
		}
		collector.addPixel(c, hits[n])
	}
	return nil
}

// sinkError classifies any sink failure as core.ErrSinkWrite
func sinkError(err error, format string, args ...interface{}) error {
	if errors.Is(err, core.ErrSinkWrite) || errors.Is(err, core.ErrIncompleteImage) {
		return errorsmod.Wrapf(err, format, args...)
	}
	return errorsmod.Wrapf(core.ErrSinkWrite, format+": %s", append(args, err)...)
}
