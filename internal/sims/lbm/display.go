package lbm

import (
	"image/color"
	"math"
)

// DisplayMode selects which derived field the display buffer encodes.
type DisplayMode int

const (
	DisplaySpeed DisplayMode = iota
	DisplayVorticity
)

func (m DisplayMode) String() string {
	if m == DisplayVorticity {
		return "vorticity"
	}
	return "speed"
}

const (
	displayLevels   = 255
	displaySolid    = 255
	speedGain       = 3.0
	vorticityGain   = 20.0
	solidGreyLevel  = 50
	backgroundRed   = 13
	backgroundGreen = 17
	backgroundBlue  = 23
)

var (
	background     = color.NRGBA{R: backgroundRed, G: backgroundGreen, B: backgroundBlue, A: 255}
	speedColor     = color.NRGBA{R: 0, G: 243, B: 255, A: 255}
	vorticityColor = color.NRGBA{R: 189, G: 0, B: 255, A: 255}
	solidColor     = color.NRGBA{R: solidGreyLevel, G: solidGreyLevel, B: solidGreyLevel, A: 255}

	speedPalette     = buildPalette(speedColor)
	vorticityPalette = buildPalette(vorticityColor)
)

func buildPalette(hot color.NRGBA) []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := 0; i < displayLevels; i++ {
		palette[i] = toRGBA(blendColors(background, hot, float64(i)/float64(displayLevels-1)))
	}
	palette[displaySolid] = toRGBA(solidColor)
	return palette
}

func toRGBA(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func blendColors(base, overlay color.NRGBA, overlayWeight float64) color.NRGBA {
	if overlayWeight <= 0 {
		return base
	}
	if overlayWeight >= 1 {
		return overlay
	}
	inv := 1 - overlayWeight
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*inv + float64(b)*overlayWeight + 0.5)
	}
	return color.NRGBA{R: mix(base.R, overlay.R), G: mix(base.G, overlay.G), B: mix(base.B, overlay.B), A: mix(base.A, overlay.A)}
}

// encodeLevel maps a non-negative magnitude onto [0, displayLevels-1].
func encodeLevel(v, gain float64) uint8 {
	n := v * gain
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n >= 1 {
		return displayLevels - 1
	}
	return uint8(n*float64(displayLevels-1) + 0.5)
}
