package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type WindowSettings struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	Title      string  `toml:"title"`
	PixelRatio float64 `toml:"pixel_ratio"` // 0 — взять у монитора
}

type BackgroundSettings struct {
	InitDelayMs          int   `toml:"init_delay_ms"`
	Seed                 int64 `toml:"seed"` // 0 — от текущего времени
	FrameRateIndependent bool  `toml:"frame_rate_independent"`
	SoftwareAccelerated  bool  `toml:"software_accelerated"` // разрешить starfield на программном рендере
}

// EffectSettings — параметры эффектов, которые стоит менять без пересборки.
type EffectSettings struct {
	StarCount     int     `toml:"star_count"`
	FireflyCount  int     `toml:"firefly_count"`
	AuroraCurves  int     `toml:"aurora_curves"`
	WaveLines     int     `toml:"wave_lines"`
	StrandSpacing float64 `toml:"strand_spacing"`
	CircuitGrid   float64 `toml:"circuit_grid"`
	NeonGridSize  float64 `toml:"neon_grid_size"`
}

type LogSettings struct {
	Level       string `toml:"level"`
	File        string `toml:"file"`
	Development bool   `toml:"development"`
}

// Settings — содержимое файла backdrop.toml.
type Settings struct {
	Window     WindowSettings     `toml:"window"`
	Background BackgroundSettings `toml:"background"`
	Effects    EffectSettings     `toml:"effects"`
	Log        LogSettings        `toml:"log"`
}

// Default возвращает настройки по умолчанию.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  ScreenWidth,
			Height: ScreenHeight,
			Title:  WindowTitle,
		},
		Background: BackgroundSettings{
			InitDelayMs:         int(InitDelay / time.Millisecond),
			SoftwareAccelerated: true,
		},
		Effects: DefaultEffects(),
		Log: LogSettings{
			Level: "info",
		},
	}
}

// DefaultEffects возвращает параметры эффектов по умолчанию.
func DefaultEffects() EffectSettings {
	return EffectSettings{
		StarCount:     StarCount,
		FireflyCount:  FireflyCount,
		AuroraCurves:  AuroraCurves,
		WaveLines:     WaveLines,
		StrandSpacing: StrandSpacing,
		CircuitGrid:   CircuitGrid,
		NeonGridSize:  NeonGridSize,
	}
}

// Load читает TOML-файл поверх настроек по умолчанию.
// Отсутствующий файл — не ошибка.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	s.Validate()
	return s, nil
}

// Validate приводит значения к допустимым диапазонам.
func (s *Settings) Validate() {
	if s.Window.Width < 1 {
		s.Window.Width = ScreenWidth
	}
	if s.Window.Height < 1 {
		s.Window.Height = ScreenHeight
	}
	if s.Window.Title == "" {
		s.Window.Title = WindowTitle
	}
	if s.Window.PixelRatio < 0 {
		s.Window.PixelRatio = 0
	}
	if s.Background.InitDelayMs < 0 {
		s.Background.InitDelayMs = 0
	}
	s.Effects.Validate()
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}

// Validate ограничивает количество частиц и шаги сеток.
func (e *EffectSettings) Validate() {
	e.StarCount = clampInt(e.StarCount, 1, 50000)
	e.FireflyCount = clampInt(e.FireflyCount, 1, 5000)
	e.AuroraCurves = clampInt(e.AuroraCurves, 1, 12)
	e.WaveLines = clampInt(e.WaveLines, 1, 12)
	if e.StrandSpacing < 20 {
		e.StrandSpacing = StrandSpacing
	}
	if e.CircuitGrid < 10 {
		e.CircuitGrid = CircuitGrid
	}
	if e.NeonGridSize < 10 {
		e.NeonGridSize = NeonGridSize
	}
}

// InitDelay возвращает задержку перед первым переключением.
func (s Settings) InitDelay() time.Duration {
	return time.Duration(s.Background.InitDelayMs) * time.Millisecond
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
