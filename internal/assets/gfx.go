// Package assets holds the patterns and palettes of the Lightning Dodge
// demo. Patterns are written as ASCII art and decoded when loaded.
package assets

import (
	"fmt"

	"lightningdodge/internal/ppu"
)

// CharPattern is an 8x8 pattern drawn with characters: '#' is pixel 3,
// ';' is pixel 2, '.' is pixel 1 and anything else is transparent.
type CharPattern [ppu.TileHeight]string

// Pattern slots
const (
	BlankPattern      uint8 = 0
	GroundPattern     uint8 = 1
	GroundTopPattern  uint8 = 2
	Digit0Pattern     uint8 = 30
	RainsplashPattern uint8 = 249
	RainPattern       uint8 = 250
	LightningPattern  uint8 = 251
	CloudLeftPattern  uint8 = 252
	CloudRightPattern uint8 = 253
	PlayerTopPattern  uint8 = 254
	PlayerPattern     uint8 = 255
)

// Background palette
const (
	BackgroundColor uint8 = 0x1D // black

	GroundAttrib uint8 = 1
	GraysAttrib  uint8 = 2
)

// Sprite palette groups
const (
	PlayerAttrib    uint8 = 0
	CloudAttrib     uint8 = 1
	LightningAttrib uint8 = 2
	RainAttrib      uint8 = 3
)

var (
	GroundColors = [3]uint8{0x27, 0x17, 0x19}
	GraysColors  = [3]uint8{0x00, 0x10, 0x20}

	PlayerColors = [3]uint8{0x2D, 0x1D, 0x07}
	CloudColors  = [3]uint8{0x30, 0x10, 0x00}
	RainColors   = [3]uint8{0x11, 0x21, 0x01}

	// LightningColorSets are cycled to make lightning flicker
	LightningColorSets = [][3]uint8{
		{0x18, 0x28, 0x18},
		{0x28, 0x28, 0x18},
		{0x38, 0x28, 0x18},
	}
)

var (
	GroundChars = CharPattern{
		"....;...",
		";.....;.",
		"..;.....",
		".;...;..",
		".;......",
		"......;.",
		"..;...;.",
		";...;...",
	}
	GroundTopChars = CharPattern{
		"########",
		"########",
		"##.##.##",
		".;...;..",
		".;......",
		"......;.",
		"..;...;.",
		";...;...",
	}
	Digit0Chars = CharPattern{
		" #####  ",
		"##   ## ",
		"##   ## ",
		"##   ## ",
		"##   ## ",
		"##   ## ",
		" #####  ",
		"        ",
	}
	Digit1Chars = CharPattern{
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"        ",
	}
	Digit2Chars = CharPattern{
		" #####  ",
		"     ## ",
		"     ## ",
		" #####  ",
		"##      ",
		"##      ",
		" #####  ",
		"        ",
	}
	Digit3Chars = CharPattern{
		"######  ",
		"     ## ",
		"     ## ",
		"######  ",
		"     ## ",
		"     ## ",
		"######  ",
		"        ",
	}
	Digit4Chars = CharPattern{
		"##   ## ",
		"##   ## ",
		"##   ## ",
		" ###### ",
		"     ## ",
		"     ## ",
		"     ## ",
		"        ",
	}
	Digit5Chars = CharPattern{
		"######  ",
		"##      ",
		"##      ",
		" #####  ",
		"     ## ",
		"     ## ",
		" #####  ",
		"        ",
	}
	Digit6Chars = CharPattern{
		" ###### ",
		"##      ",
		"##      ",
		"######  ",
		"##   ## ",
		"##   ## ",
		" #####  ",
		"        ",
	}
	Digit7Chars = CharPattern{
		" ###### ",
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"     ## ",
		"        ",
	}
	Digit8Chars = CharPattern{
		" #####  ",
		"##   ## ",
		"##   ## ",
		" #####  ",
		"##   ## ",
		"##   ## ",
		" #####  ",
		"        ",
	}
	Digit9Chars = CharPattern{
		" #####  ",
		"##   ## ",
		"##   ## ",
		" ###### ",
		"     ## ",
		"     ## ",
		"######  ",
		"        ",
	}
	RainsplashChars = CharPattern{
		"        ",
		"        ",
		"    .   ",
		"    .   ",
		" .  .  .",
		"  . . . ",
		" . . . .",
		"   ...  ",
	}
	RainChars = CharPattern{
		"    .   ",
		"    .   ",
		"    .   ",
		"    .   ",
		"    .   ",
		"    .   ",
		"    .   ",
		"    .   ",
	}
	LightningChars = CharPattern{
		"    .   ",
		"   ..   ",
		"  ...   ",
		" ....   ",
		"    ....",
		"    ... ",
		"    ..  ",
		"    .   ",
	}
	CloudLeftChars = CharPattern{
		"      ..",
		"  .. ...",
		" .......",
		"........",
		"........",
		"........",
		" .......",
		"    ....",
	}
	CloudRightChars = CharPattern{
		"..      ",
		"... ..  ",
		"....... ",
		"........",
		"........",
		"....... ",
		".....   ",
		".       ",
	}
	PlayerTopChars = CharPattern{
		"        ",
		"        ",
		"  ....  ",
		" .    . ",
		" .    . ",
		".      .",
		".      .",
		".      .",
	}
	PlayerChars = CharPattern{
		"........",
		"........",
		"..;..;..",
		"........",
		"..;..;..",
		"...;;...",
		"........",
		"##   ## ",
	}
)

// DigitChars indexes the digit patterns by value.
var DigitChars = [10]CharPattern{
	Digit0Chars, Digit1Chars, Digit2Chars, Digit3Chars, Digit4Chars,
	Digit5Chars, Digit6Chars, Digit7Chars, Digit8Chars, Digit9Chars,
}

// DigitPattern returns the pattern slot of a decimal digit.
func DigitPattern(d int) uint8 {
	return Digit0Pattern + uint8(d%10)
}

// DecodePattern converts ASCII art into a packed pattern.
func DecodePattern(cp CharPattern) (ppu.Pattern, error) {
	var pat ppu.Pattern
	for y, row := range cp {
		if len(row) != ppu.TileWidth {
			return pat, fmt.Errorf("pattern row %d: expected %d characters, got %d", y, ppu.TileWidth, len(row))
		}
		for x := 0; x < ppu.TileWidth; x++ {
			pat.SetPixel(x, y, charPixel(row[x]))
		}
	}
	return pat, nil
}

func charPixel(c byte) uint8 {
	switch c {
	case '#':
		return 3
	case ';':
		return 2
	case '.':
		return 1
	default:
		return 0
	}
}

type patternEntry struct {
	slot  uint8
	chars CharPattern
}

// LoadAll decodes every pattern and installs it in the PPU's pattern table.
func LoadAll(p *ppu.PPU) error {
	patterns := []patternEntry{
		{GroundPattern, GroundChars},
		{GroundTopPattern, GroundTopChars},
		{RainsplashPattern, RainsplashChars},
		{RainPattern, RainChars},
		{LightningPattern, LightningChars},
		{CloudLeftPattern, CloudLeftChars},
		{CloudRightPattern, CloudRightChars},
		{PlayerTopPattern, PlayerTopChars},
		{PlayerPattern, PlayerChars},
	}
	for d, chars := range DigitChars {
		patterns = append(patterns, patternEntry{DigitPattern(d), chars})
	}

	p.SetPattern(int(BlankPattern), ppu.Pattern{})
	for _, entry := range patterns {
		pat, err := DecodePattern(entry.chars)
		if err != nil {
			return fmt.Errorf("decoding pattern %d: %w", entry.slot, err)
		}
		p.SetPattern(int(entry.slot), pat)
	}
	return nil
}

// SetPalettes writes the demo's background and sprite palettes. The
// lightning group starts on its first color set.
func SetPalettes(p *ppu.PPU) {
	p.SetCommonBGColor(BackgroundColor)
	p.SetBGColors(GroundAttrib, GroundColors)
	p.SetBGColors(GraysAttrib, GraysColors)

	p.SetSpriteColors(PlayerAttrib, PlayerColors)
	p.SetSpriteColors(CloudAttrib, CloudColors)
	p.SetSpriteColors(LightningAttrib, LightningColorSets[0])
	p.SetSpriteColors(RainAttrib, RainColors)
}
