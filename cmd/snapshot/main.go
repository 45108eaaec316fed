// cmd/snapshot/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"go.uber.org/zap"

	"go-backdrop/internal/background"
	"go-backdrop/internal/config"
	"go-backdrop/internal/host"
	"go-backdrop/internal/logging"
	"go-backdrop/internal/registry"
	"go-backdrop/internal/surface"
)

var errNoSurface = errors.New("active effect has no software surface")

// resolveEffect принимает имя эффекта или его индекс.
func resolveEffect(reg *registry.Registry, v string) (int, error) {
	if i := reg.IndexOf(v); i >= 0 {
		return i, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("unknown effect %q (have %v)", v, reg.Names())
	}
	return i, nil
}

func render(logger *zap.Logger, settings config.Settings, effectArg string, frames, width, height int, scale float64, out string) error {
	reg := registry.Default()
	index, err := resolveEffect(reg, effectArg)
	if err != nil {
		return err
	}

	h := host.New(host.Viewport{Width: width, Height: height, PixelRatio: scale}, surface.SoftwareProvider{Accelerated: true})
	m := background.New(h, reg,
		background.WithLogger(logger),
		background.WithInitDelay(0),
		background.WithCursor(false),
		background.WithSeed(settings.Background.Seed),
		background.WithTuning(settings.Effects),
	)
	defer m.Dispose()

	// Первый шаг выполняет отложенный выбор эффекта 0
	h.Step(0)
	if err := m.SwitchBackground(index); err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		h.Step(config.FrameTime)
	}

	sw, ok := m.Active().Surface().(*surface.SoftwareSurface)
	if !ok {
		return errNoSurface
	}
	if err := sw.Err(); err != nil {
		return fmt.Errorf("rasteriser reported: %w", err)
	}
	if err := sw.SavePNG(out); err != nil {
		return err
	}
	logger.Info("Snapshot written",
		zap.String("effect", m.ActiveName()),
		zap.Int("frames", frames),
		zap.String("out", out),
	)
	return nil
}

func main() {
	configPath := flag.String("config", "backdrop.toml", "path to the settings file")
	effectArg := flag.String("effect", "stars", "effect name or index")
	frames := flag.Int("frames", 120, "frames to run before saving")
	width := flag.Int("width", config.ScreenWidth, "viewport width")
	height := flag.Int("height", config.ScreenHeight, "viewport height")
	scale := flag.Float64("scale", 1, "pixel ratio")
	out := flag.String("out", "backdrop.png", "output PNG path")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, closeLog, err := logging.New(settings.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	if err := render(logger, settings, *effectArg, *frames, *width, *height, *scale, *out); err != nil {
		logger.Error("Snapshot failed", zap.Error(err))
		closeLog()
		log.Fatal(err)
	}
}
