//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"lbm2d/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type velocityProvider interface {
	VelocityAt(x, y float64) (float64, float64)
}

type obstacleProvider interface {
	ObstacleMask() []bool
}

// Overlay draws optional visuals on top of the base field: velocity arrows
// (key 1) and obstacle outlines (key 2).
type Overlay struct {
	sim          core.Sim
	scale        int
	showVelocity bool
	showOutline  bool

	pixel      *ebiten.Image
	samples    []vectorSample
	sampleSpan float64

	outlineImg *ebiten.Image
	outlineBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	o := &Overlay{sim: sim, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.samples, o.sampleSpan = vectorSamples(sim.Size(), scale)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showVelocity = !o.showVelocity
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showOutline = !o.showOutline
	}
}

// Draw renders the enabled layers onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showOutline {
		if provider, ok := o.sim.(obstacleProvider); ok {
			o.drawOutline(screen, provider.ObstacleMask())
		}
	}
	if o.showVelocity {
		if provider, ok := o.sim.(velocityProvider); ok {
			o.drawVelocity(screen, provider)
		}
	}
}

func (o *Overlay) drawVelocity(screen *ebiten.Image, provider velocityProvider) {
	const (
		calmThreshold    = 0.005
		maxSpeedEstimate = 0.25
		headAngle        = math.Pi / 6
		calmDotScale     = 0.18
		minThickness     = 0.3
		maxThickness     = 0.6
	)

	scale := float64(o.scale)
	minLength := o.sampleSpan * 0.35
	maxLength := o.sampleSpan * 0.8
	calmDotSize := math.Max(o.sampleSpan*calmDotScale, scale*0.75)

	for _, sample := range o.samples {
		vx, vy := provider.VelocityAt(sample.cx, sample.cy)
		speed := math.Hypot(vx, vy)
		if math.IsNaN(speed) {
			continue
		}
		if speed < calmThreshold {
			o.drawPoint(screen, sample.sx, sample.sy, calmDotSize, color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}

		nx, ny := vx/speed, vy/speed
		normalized := clamp01(speed / maxSpeedEstimate)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, scale*4.5)
		tailLength := length * 0.4
		tipX := sample.sx + nx*(length-tailLength)
		tipY := sample.sy + ny*(length-tailLength)
		tailX := sample.sx - nx*tailLength
		tailY := sample.sy - ny*tailLength

		thickness := math.Max(scale*(minThickness+(maxThickness-minThickness)*normalized), 1)
		col := arrowColor(normalized)
		o.drawLine(screen, tailX, tailY, tipX-nx*headLength, tipY-ny*headLength, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}
}

func (o *Overlay) drawOutline(screen *ebiten.Image, mask []bool) {
	size := o.sim.Size()
	total := size.W * size.H
	if len(mask) != total || total == 0 {
		return
	}
	if o.outlineImg == nil {
		o.outlineImg = ebiten.NewImage(size.W, size.H)
		o.outlineBuf = make([]byte, 4*total)
		for i, edge := range outlineMask(mask, size.W, size.H) {
			if edge {
				copy(o.outlineBuf[i*4:], []byte{255, 120, 40, 220})
			}
		}
		o.outlineImg.WritePixels(o.outlineBuf)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.outlineImg, op)
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
