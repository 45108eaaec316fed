// internal/config/config.go
package config

import (
	"image/color"
	"time"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 800
	WindowTitle  = "Backdrop"
	MaxDeltaTime = 0.06 // секунды, ограничение шага кадра

	ContainerID = "background-container" // единственный контейнер фона
	InitDelay   = 100 * time.Millisecond // задержка перед первым эффектом
	FrameTime   = time.Second / 60

	InfluenceRadius = 300.0 // радиус влияния указателя для волн и ДНК
	FleeRadius      = 100.0 // светлячки убегают ближе этого
	PulseRadius     = 100.0 // импульс схемы рождается у узла ближе этого
	MaxPulses       = 256

	StarCount      = 8000
	StarSpread     = 2000.0
	StarFieldFar   = 2000.0
	StarCameraZ    = -1000.0
	FireflyCount   = 50
	AuroraCurves   = 5
	WaveLines      = 3
	StrandSpacing  = 300.0
	CircuitGrid    = 50.0
	NeonGridSize   = 70.0
	NeonGridDepths = 20

	CursorSize        = 20.0
	CursorEasing      = 0.35 // доля поворота к целевому углу за кадр
	CursorStrokeWidth = 1.5

	IndicatorOffsetX = 24 // отступ индикатора от правого верхнего угла
	IndicatorRadius  = 8
	HUDFontSize      = 13
)

var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	FadeColor       = color.NRGBA{0, 0, 0, 26}  // rgba(0,0,0,0.1)
	StarClearColor  = color.NRGBA{0, 0, 13, 255} // тёмно-синий
	CursorFill      = color.NRGBA{255, 255, 255, 255}
	CursorStroke    = color.NRGBA{0, 255, 0, 255}
	HUDTextColor    = color.RGBA{240, 240, 240, 200}

	IdleIndicatorColor = color.NRGBA{90, 90, 90, 255}
)
