package ppu

import (
	"fmt"
	"image/color"
	"io"
)

// ColorTable maps the 64 6-bit color codes to RGB.
type ColorTable [64][3]uint8

// DefaultColorTable is the NTSC 2C02 palette.
var DefaultColorTable = ColorTable{
	// 0x00-0x0F
	{0x66, 0x66, 0x66}, {0x00, 0x2A, 0x88}, {0x14, 0x12, 0xA7}, {0x3B, 0x00, 0xA4}, {0x5C, 0x00, 0x7E}, {0x6E, 0x00, 0x40}, {0x6C, 0x06, 0x00}, {0x56, 0x1D, 0x00},
	{0x33, 0x35, 0x00}, {0x0B, 0x48, 0x00}, {0x00, 0x52, 0x00}, {0x00, 0x4F, 0x08}, {0x00, 0x40, 0x4D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	// 0x10-0x1F
	{0xAD, 0xAD, 0xAD}, {0x15, 0x5F, 0xD9}, {0x42, 0x40, 0xFF}, {0x75, 0x27, 0xFE}, {0xA0, 0x1A, 0xCC}, {0xB7, 0x1E, 0x7B}, {0xB5, 0x31, 0x20}, {0x99, 0x4E, 0x00},
	{0x6B, 0x6D, 0x00}, {0x38, 0x87, 0x00}, {0x0C, 0x93, 0x00}, {0x00, 0x8F, 0x32}, {0x00, 0x7C, 0x8D}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	// 0x20-0x2F
	{0xFF, 0xFE, 0xFF}, {0x64, 0xB0, 0xFF}, {0x92, 0x90, 0xFF}, {0xC6, 0x76, 0xFF}, {0xF3, 0x6A, 0xFF}, {0xFE, 0x6E, 0xCC}, {0xFE, 0x81, 0x70}, {0xEA, 0x9E, 0x22},
	{0xBC, 0xBE, 0x00}, {0x88, 0xD8, 0x00}, {0x5C, 0xE4, 0x30}, {0x45, 0xE0, 0x82}, {0x48, 0xCD, 0xDE}, {0x4F, 0x4F, 0x4F}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
	// 0x30-0x3F
	{0xFF, 0xFE, 0xFF}, {0xC0, 0xDF, 0xFF}, {0xD3, 0xD2, 0xFF}, {0xE8, 0xC8, 0xFF}, {0xFB, 0xC2, 0xFF}, {0xFE, 0xC4, 0xEA}, {0xFE, 0xCC, 0xC5}, {0xF7, 0xD8, 0xA5},
	{0xE4, 0xE5, 0x94}, {0xCF, 0xF2, 0x9B}, {0xBE, 0xFB, 0xB3}, {0xB8, 0xF8, 0xD8}, {0xB8, 0xF8, 0xF8}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00}, {0x00, 0x00, 0x00},
}

// RGBA returns the opaque color for a code. Only the low 6 bits are used.
func (ct *ColorTable) RGBA(code uint8) color.RGBA {
	rgb := ct[code&0x3f]
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

// LoadColorTable reads a 192 byte .pal file of packed RGB triplets.
func LoadColorTable(r io.Reader) (ColorTable, error) {
	var ct ColorTable
	var buf [len(ct) * 3]uint8
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return ct, fmt.Errorf("reading palette: %w", err)
	}
	for i := range ct {
		copy(ct[i][:], buf[i*3:i*3+3])
	}
	return ct, nil
}
