package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-ppm-raytracer/pkg/config"
	"github.com/df07/go-ppm-raytracer/pkg/core"
	mathpkg "github.com/df07/go-ppm-raytracer/pkg/math"
	"github.com/df07/go-ppm-raytracer/pkg/ppm"
	"github.com/df07/go-ppm-raytracer/pkg/renderer"
	"github.com/df07/go-ppm-raytracer/pkg/scene"
)

const (
	appName   = "raytracer"
	version   = "v0.1.0"
	scenesDir = "scenes"
)

// app carries the state shared by every command
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	stdout  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdout: os.Stdout}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		a.logger.Error().Err(err).Msg("raytracer failed")
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func (a *app) rootCmd() *cobra.Command {
	a.v = config.NewViper()
	a.logger = newLogger(os.Stderr, zerolog.InfoLevel)

	root := &cobra.Command{
		Use:   appName,
		Short: "Minimal ray tracer writing binary PPM images",
		Long: `Renders a camera view of spheres over a sky gradient and writes it as a
binary PPM (P6) image. Settings come from defaults, an optional YAML config
file, RAYTRACER_* environment variables and flags, in increasing priority.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
				return err
			}
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = newLogger(os.Stderr, cfg.Level())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "YAML config file")
	flags.StringP("output", "o", "image.ppm", "output PPM file")
	flags.Int("width", 1920, "image width in pixels")
	flags.Float64("aspect-ratio", 16.0/9.0, "image width divided by height")
	flags.Int("workers", 1, "row workers (0 = one per CPU)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.renderCmd(),
		a.skyCmd(),
		a.swatchCmd(),
		a.vec3Cmd(),
		a.scenesCmd(),
		a.configCmd(),
	)
	return root
}

func (a *app) renderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "Render a built-in scene or a YAML scene file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.cfg.Scene
			if len(args) == 1 {
				name = args[0]
			}
			s, err := createScene(name)
			if err != nil {
				return err
			}
			return a.render(cmd.Context(), s)
		},
	}
	cmd.Flags().String("scene", "sphere", "built-in scene name or YAML scene path")
	return cmd
}

func (a *app) skyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sky",
		Short: "Render the sky gradient with no geometry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), scene.NewSkyScene())
		},
	}
}

func (a *app) swatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swatch",
		Short: "Write a square color test pattern",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := writeImage(a.cfg.Output, func(sink renderer.Sink) error {
				return renderer.RenderSwatch(sink, a.cfg.SwatchSize)
			})
			if err != nil {
				return err
			}
			a.logger.Info().Str("output", a.cfg.Output).Int("size", a.cfg.SwatchSize).Msg("swatch written")
			return nil
		},
	}
	cmd.Flags().Int("size", 1024, "edge length of the swatch in pixels")
	return cmd
}

func (a *app) vec3Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vec3",
		Short: "Print a worked example of the vector operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVectorDemo(a.stdout)
		},
	}
}

func (a *app) scenesCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "scenes",
		Short: "List built-in scenes and the scene files in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenes, err := scene.ListAllScenes(dir)
			if err != nil {
				return err
			}
			for _, info := range scenes {
				fmt.Fprintf(a.stdout, "%-8s %-24s %s\n", info.Type, info.ID, info.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", scenesDir, "directory of YAML scene files")

	cmd.AddCommand(&cobra.Command{
		Use:   "export <builtin> <path>",
		Short: "Write a built-in scene as a YAML scene file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Builtin(args[0])
			if err != nil {
				return err
			}
			if err := scene.Save(args[1], s); err != nil {
				return err
			}
			a.logger.Info().Str("scene", args[0]).Str("path", args[1]).Msg("scene exported")
			return nil
		},
	})
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [path]",
		Short: "Print the effective configuration, or save it to path",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return config.Save(args[0], a.cfg)
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return errorsmod.Wrap(core.ErrInvalidConfig, err.Error())
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
}

// render writes one frame of s to the configured output. The image height
// follows the scene camera when the scene file fixes its aspect ratio;
// otherwise the camera takes the configured aspect ratio.
func (a *app) render(ctx context.Context, s *scene.Scene) error {
	height := a.cfg.Height()
	if s.AspectRatioFixed {
		height = int(float64(a.cfg.Width) / s.CameraConfig.AspectRatio)
	} else if err := s.SetAspectRatio(a.cfg.AspectRatio); err != nil {
		return err
	}

	workers := a.cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	rt := renderer.NewRaytracer(s, a.cfg.Width, height,
		renderer.WithWorkers(workers),
		renderer.WithLogger(a.logger))
	// Reject bad dimensions before creating the output file
	if err := rt.Validate(); err != nil {
		return err
	}

	var stats renderer.RenderStats
	err := writeImage(a.cfg.Output, func(sink renderer.Sink) error {
		var err error
		stats, err = rt.Render(ctx, sink)
		return err
	})
	if err != nil {
		return err
	}

	a.logger.Info().
		Str("output", a.cfg.Output).
		Int("width", stats.Width).
		Int("height", stats.Height).
		Float64("hit_ratio", stats.HitRatio()).
		Msg("image written")
	return nil
}

// writeImage creates path, lets draw stream a frame into it and closes it.
// The first error wins: a failed draw is not masked by the close that follows.
func writeImage(path string, draw func(renderer.Sink) error) error {
	enc, err := ppm.Create(path)
	if err != nil {
		return err
	}

	err = draw(enc)
	if closeErr := enc.Close(); err == nil {
		err = closeErr
	}
	return err
}

// createScene resolves a built-in scene name, a YAML scene path, or the name
// of a file in the scenes directory. A scene file that exists but does not
// load reports its own error.
func createScene(name string) (*scene.Scene, error) {
	if s, err := scene.Builtin(name); err == nil {
		return s, nil
	}
	s, err := tryLoadSceneFile(name)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}
	return nil, errorsmod.Wrapf(core.ErrInvalidScene, "unknown scene %q", name)
}

// tryLoadSceneFile attempts to load name as a path, then as scenes/<name>.yaml.
// It returns nil and no error when neither file exists.
func tryLoadSceneFile(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, nil
	}
	for _, path := range []string{name, filepath.Join(scenesDir, name+".yaml")} {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		return scene.Load(path)
	}
	return nil, nil
}

// writeVectorDemo prints a worked example of the Vec3 operations
func writeVectorDemo(w io.Writer) error {
	p := mathpkg.NewVec3(1, 2, 3)
	q := mathpkg.NewVec3(2, 1, 0)
	s := p.Cross(q)

	pHat, err := p.Unit()
	if err != nil {
		return err
	}
	qHat, err := q.Unit()
	if err != nil {
		return err
	}

	lines := []struct {
		label string
		value interface{}
	}{
		{"p", p},
		{"-p", p.Negate()},
		{"q", q},
		{"p + q", p.Add(q)},
		{"p - q", p.Subtract(q)},
		{"p x q", s},
		{"p * q", fmt.Sprintf("%f", p.Dot(q))},
		{"(p x q) * p", fmt.Sprintf("%f", p.Dot(s))},
		{"(p x q) * q", fmt.Sprintf("%f", q.Dot(s))},
		{"p_hat", pHat},
		{"q_hat", qHat},
		{"||p_hat||", fmt.Sprintf("%f", pHat.Length())},
		{"||q_hat||", fmt.Sprintf("%f", qHat.Length())},
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-11s = %v\n", line.label, line.value); err != nil {
			return err
		}
	}
	return nil
}
