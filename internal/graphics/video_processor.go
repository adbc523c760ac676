package graphics

import (
	"image"
	"math"
)

// VideoProcessor applies brightness, contrast and saturation to frames
type VideoProcessor struct {
	brightness float64
	contrast   float64
	saturation float64
}

// NewVideoProcessor creates a new video processor. 1.0 leaves a channel
// unchanged.
func NewVideoProcessor(brightness, contrast, saturation float64) *VideoProcessor {
	return &VideoProcessor{
		brightness: brightness,
		contrast:   contrast,
		saturation: saturation,
	}
}

// IsIdentity returns true if processing would not change any pixel
func (vp *VideoProcessor) IsIdentity() bool {
	return vp.brightness == 1.0 && vp.contrast == 1.0 && vp.saturation == 1.0
}

// ProcessFrame applies the video effects to img in place. Alpha is kept.
func (vp *VideoProcessor) ProcessFrame(img *image.RGBA) {
	if vp.IsIdentity() {
		return
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			row[i], row[i+1], row[i+2] = vp.processPixel(row[i], row[i+1], row[i+2])
		}
	}
}

func (vp *VideoProcessor) processPixel(r8, g8, b8 uint8) (uint8, uint8, uint8) {
	r := float64(r8) / 255 * vp.brightness
	g := float64(g8) / 255 * vp.brightness
	b := float64(b8) / 255 * vp.brightness

	r = (r-0.5)*vp.contrast + 0.5
	g = (g-0.5)*vp.contrast + 0.5
	b = (b-0.5)*vp.contrast + 0.5

	if vp.saturation != 1.0 {
		h, s, l := rgbToHSL(r, g, b)
		s = math.Min(s*vp.saturation, 1.0)
		r, g, b = hslToRGB(h, s, l)
	}

	return toByte(r), toByte(g), toByte(b)
}

// toByte scales a 0-1 channel to 0-255, clamping out of range values
func toByte(v float64) uint8 {
	v = math.Round(v * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// rgbToHSL converts RGB to HSL color space
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))

	l = (hi + lo) / 2
	if hi == lo {
		return 0, 0, l
	}

	d := hi - lo
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

// hslToRGB converts HSL to RGB color space
func hslToRGB(h, s, l float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return hueToRGB(p, q, h+1.0/3.0), hueToRGB(p, q, h), hueToRGB(p, q, h-1.0/3.0)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// SetBrightness updates the brightness value
func (vp *VideoProcessor) SetBrightness(brightness float64) {
	vp.brightness = brightness
}

// SetContrast updates the contrast value
func (vp *VideoProcessor) SetContrast(contrast float64) {
	vp.contrast = contrast
}

// SetSaturation updates the saturation value
func (vp *VideoProcessor) SetSaturation(saturation float64) {
	vp.saturation = saturation
}
