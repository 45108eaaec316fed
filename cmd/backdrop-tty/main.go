// cmd/backdrop-tty/main.go
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"go-backdrop/internal/background"
	"go-backdrop/internal/config"
	"go-backdrop/internal/host"
	"go-backdrop/internal/logging"
	"go-backdrop/internal/registry"
	"go-backdrop/internal/surface"
)

// Одна ячейка терминала — столбец из двух пикселей поверхности (верхний
// и нижний полублок). Логически ячейка занимает cellW×cellH пикселей.
const (
	cellW      = 4
	cellH      = 8
	pixelRatio = 2.0 / cellH // два пикселя на cellH логических
)

var arrows = []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

type Terminal struct {
	screen  tcell.Screen
	host    *host.Host
	manager *background.Manager
	log     *zap.Logger

	cols, rows int
	lastTick   time.Time
}

func NewTerminal(logger *zap.Logger, settings config.Settings, accelerated bool) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	cols, rows := screen.Size()
	h := host.New(viewportFor(cols, rows), surface.SoftwareProvider{Accelerated: accelerated})

	m := background.New(h, registry.Default(),
		background.WithLogger(logger),
		background.WithInitDelay(settings.InitDelay()),
		background.WithSeed(settings.Background.Seed),
		background.WithTuning(settings.Effects),
		background.WithFrameRateIndependent(settings.Background.FrameRateIndependent),
	)

	return &Terminal{
		screen:   screen,
		host:     h,
		manager:  m,
		log:      logger,
		cols:     cols,
		rows:     rows,
		lastTick: time.Now(),
	}, nil
}

func viewportFor(cols, rows int) host.Viewport {
	return host.Viewport{Width: cols * cellW, Height: rows * cellH, PixelRatio: pixelRatio}
}

func (t *Terminal) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		switch ev.Key() {
		case tcell.KeyRight:
			_ = t.manager.Next()
		case tcell.KeyLeft:
			_ = t.manager.Prev()
		case tcell.KeyRune:
			r := ev.Rune()
			if r == 'q' {
				return false
			}
			if r >= '1' && r <= '9' {
				// ошибка уже в логе, экран остаётся живым
				_ = t.manager.SwitchBackground(int(r - '1'))
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		t.host.MovePointer(float64(col*cellW+cellW/2), float64(row*cellH+cellH/2))

	case *tcell.EventResize:
		t.screen.Sync()
		t.cols, t.rows = t.screen.Size()
		vp := viewportFor(t.cols, t.rows)
		t.host.Resize(vp.Width, vp.Height, vp.PixelRatio)
	}
	return true
}

// pumpEvents переправляет события poll в out, пока poll не вернёт nil
// или не закроется done.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (t *Terminal) run() {
	ticker := time.NewTicker(config.FrameTime)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen.PollEvent, eventChan, done)

	for {
		select {
		case ev := <-eventChan:
			if !t.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(t.lastTick)
			t.lastTick = now
			if dt > time.Duration(config.MaxDeltaTime*float64(time.Second)) {
				dt = time.Duration(config.MaxDeltaTime * float64(time.Second))
			}
			t.host.Step(dt)
			t.draw()
		}
	}
}

func (t *Terminal) draw() {
	t.screen.Clear()

	for _, s := range t.manager.Container().Children() {
		if !s.Released() {
			t.blit(s.Image())
		}
	}

	if c := t.manager.Cursor(); c != nil {
		if x, y, visible := c.Position(); visible {
			t.screen.SetContent(int(x)/cellW, int(y)/cellH, arrowFor(c.Angle()), nil,
				tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true))
		}
	}

	name := t.manager.ActiveName()
	if name == "" {
		name = "-"
	}
	idx, _ := t.manager.ActiveIndex()
	t.label(0, 0, fmt.Sprintf(" %d/%d %s  1-%d ←→ q ", idx+1, t.manager.Registry().Len(), name, t.manager.Registry().Len()))

	t.screen.Show()
}

// blit рисует картинку полублоками: верхний пиксель — цвет символа, нижний — фон.
func (t *Terminal) blit(img image.Image) {
	b := img.Bounds()
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			x := b.Min.X + col
			y := b.Min.Y + row*2
			if x >= b.Max.X || y >= b.Max.Y {
				continue
			}
			top := toTcell(img.At(x, y))
			bottom := tcell.ColorBlack
			if y+1 < b.Max.Y {
				bottom = toTcell(img.At(x, y+1))
			}
			t.screen.SetContent(col, row, '▀', nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
}

func (t *Terminal) label(col, row int, s string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	for _, r := range s {
		if col >= t.cols {
			return
		}
		t.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (t *Terminal) cleanup() {
	t.manager.Dispose()
	t.screen.Fini()
}

func toTcell(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

func arrowFor(angle float64) rune {
	sector := int(math.Round(angle/(math.Pi/4))) % len(arrows)
	if sector < 0 {
		sector += len(arrows)
	}
	return arrows[sector]
}

func main() {
	configPath := flag.String("config", "backdrop.toml", "path to the settings file")
	accelerated := flag.Bool("accelerated", true, "let the software rasteriser serve the starfield")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		os.Exit(1)
	}
	// экран занят, поэтому лог уходит в файл
	if settings.Log.File == "" {
		settings.Log.File = "backdrop-tty.log"
	}
	logger, closeLog, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// флаг из командной строки важнее файла настроек
	allowAccelerated := settings.Background.SoftwareAccelerated
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "accelerated" {
			allowAccelerated = *accelerated
		}
	})

	term, err := NewTerminal(logger, settings, allowAccelerated)
	if err != nil {
		logger.Error("Failed to initialize terminal", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		closeLog()
		os.Exit(1)
	}
	defer term.cleanup()

	term.run()
}
