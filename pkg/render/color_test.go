package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSLAPrimaries(t *testing.T) {
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, HSLA(0, 1, 0.5, 1))
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, HSLA(120, 1, 0.5, 1))
	assert.Equal(t, color.NRGBA{0, 0, 255, 255}, HSLA(240, 1, 0.5, 1))
	assert.Equal(t, color.NRGBA{0, 255, 255, 128}, HSLA(180, 1, 0.5, 0.5))
	assert.Equal(t, HSLA(30, 1, 0.5, 1), HSLA(390, 1, 0.5, 1))
}

func TestHSLAGrey(t *testing.T) {
	c := HSLA(200, 0, 0.5, 1)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.G, c.B)
}

func TestAlphaHelpers(t *testing.T) {
	assert.Equal(t, color.NRGBA{0, 255, 150, 77}, RGBA(0, 255, 150, 0.3))
	assert.Equal(t, uint8(128), WithAlpha(color.NRGBA{A: 255}, 0.5).A)
	assert.Equal(t, color.NRGBA{50, 50, 50, 100}, LerpColor(color.NRGBA{0, 0, 0, 0}, color.NRGBA{100, 100, 100, 200}, 0.5))
	assert.Equal(t, color.NRGBA{100, 50, 0, 9}, DarkenColor(color.NRGBA{200, 100, 0, 9}))
}
