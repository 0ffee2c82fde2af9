package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-ppm-raytracer/pkg/color"
)

// RenderStats contains statistics about a rendered frame
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Pixels written to the sink
	Hits            int           // Pixels whose ray hit the scene
	Misses          int           // Pixels shaded by the background
	MeanLuminance   float64       // Mean pixel luma, 0-255
	StdDevLuminance float64       // Standard deviation of pixel luma
	Elapsed         time.Duration // Wall time of the render
}

// HitRatio returns the fraction of pixels that hit the scene
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalPixels)
}

// statsCollector accumulates per-pixel data in emission order
type statsCollector struct {
	hits       int
	luminances []float64
}

func newStatsCollector(pixels int) *statsCollector {
	return &statsCollector{luminances: make([]float64, 0, pixels)}
}

func (sc *statsCollector) addPixel(c color.Color, hit bool) {
	if hit {
		sc.hits++
	}
	sc.luminances = append(sc.luminances, c.Luminance())
}

func (sc *statsCollector) finish(width, height int, elapsed time.Duration) RenderStats {
	stats := RenderStats{
		Width:       width,
		Height:      height,
		TotalPixels: len(sc.luminances),
		Hits:        sc.hits,
		Misses:      len(sc.luminances) - sc.hits,
		Elapsed:     elapsed,
	}
	switch len(sc.luminances) {
	case 0:
	case 1:
		stats.MeanLuminance = sc.luminances[0]
	default:
		stats.MeanLuminance, stats.StdDevLuminance = stat.MeanStdDev(sc.luminances, nil)
	}
	return stats
}
