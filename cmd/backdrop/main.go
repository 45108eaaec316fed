// cmd/backdrop/main.go
package main

import (
	"errors"
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"go-backdrop/internal/background"
	"go-backdrop/internal/config"
	"go-backdrop/internal/host"
	"go-backdrop/internal/logging"
	"go-backdrop/internal/registry"
	"go-backdrop/internal/state"
	"go-backdrop/internal/surface"
	"go-backdrop/pkg/render"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	host           *host.Host
	pixelRatio     float64 // 0 — брать у монитора
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	return a.stateMachine.Update(deltaTime)
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

// Layout отдаёт логический размер окна; поверхности эффектов
// выделяются с учётом плотности пикселей и сжимаются при выводе.
func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.host.Resize(outsideWidth, outsideHeight, resolveRatio(a.pixelRatio))
	return outsideWidth, outsideHeight
}

func resolveRatio(configured float64) float64 {
	if configured > 0 {
		return configured
	}
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

func main() {
	configPath := flag.String("config", "backdrop.toml", "path to the settings file")
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
	defer func() { _ = logger.Sync() }()

	ratio := resolveRatio(settings.Window.PixelRatio)
	h := host.New(host.Viewport{
		Width:      settings.Window.Width,
		Height:     settings.Window.Height,
		PixelRatio: ratio,
	}, surface.EbitenProvider{})

	manager := background.New(h, registry.Default(),
		background.WithLogger(logger),
		background.WithInitDelay(settings.InitDelay()),
		background.WithSeed(settings.Background.Seed),
		background.WithTuning(settings.Effects),
		background.WithFrameRateIndependent(settings.Background.FrameRateIndependent),
	)
	defer manager.Dispose()

	overlay, err := render.NewOverlay(config.HUDFontSize)
	if err != nil {
		logger.Warn("Falling back to bitmap HUD font", zap.Error(err))
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	sm.SetState(state.NewBackdropState(sm, h, manager, overlay, logger))

	app := &AppGame{
		stateMachine:   sm,
		host:           h,
		pixelRatio:     settings.Window.PixelRatio,
		lastUpdateTime: time.Now(),
	}

	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)

	logger.Info("Starting window",
		zap.Int("width", settings.Window.Width),
		zap.Int("height", settings.Window.Height),
		zap.Float64("pixel_ratio", ratio),
	)
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("Game loop failed", zap.Error(err))
	}
}
