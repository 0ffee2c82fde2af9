package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-ppm-raytracer/pkg/color"
)

func TestStatsCollector(t *testing.T) {
	tests := []struct {
		name   string
		pixels []color.Color
		hits   []bool
		mean   float64
		stddev float64
	}{
		{
			name: "empty",
		},
		{
			name:   "single pixel",
			pixels: []color.Color{color.White},
			hits:   []bool{true},
			mean:   255,
		},
		{
			name:   "black and white",
			pixels: []color.Color{color.Black, color.White},
			hits:   []bool{false, true},
			mean:   127.5,
			// sample standard deviation of {0, 255}
			stddev: 255 / math.Sqrt2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collector := newStatsCollector(len(tt.pixels))
			expectedHits := 0
			for i, c := range tt.pixels {
				collector.addPixel(c, tt.hits[i])
				if tt.hits[i] {
					expectedHits++
				}
			}

			stats := collector.finish(2, 1, time.Second)
			if stats.TotalPixels != len(tt.pixels) {
				t.Errorf("Expected %d pixels, got %d", len(tt.pixels), stats.TotalPixels)
			}
			if stats.Hits != expectedHits || stats.Misses != len(tt.pixels)-expectedHits {
				t.Errorf("Unexpected hit counts: %+v", stats)
			}
			if math.Abs(stats.MeanLuminance-tt.mean) > 1e-6 {
				t.Errorf("Expected mean %v, got %v", tt.mean, stats.MeanLuminance)
			}
			if math.Abs(stats.StdDevLuminance-tt.stddev) > 1e-6 {
				t.Errorf("Expected stddev %v, got %v", tt.stddev, stats.StdDevLuminance)
			}
		})
	}
}

func TestRenderStats_HitRatio(t *testing.T) {
	if got := (RenderStats{}).HitRatio(); got != 0 {
		t.Errorf("Expected 0 for an empty frame, got %v", got)
	}
	if got := (RenderStats{TotalPixels: 8, Hits: 2}).HitRatio(); got != 0.25 {
		t.Errorf("Expected 0.25, got %v", got)
	}
}
