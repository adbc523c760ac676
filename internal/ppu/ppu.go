// Package ppu implements a tile and sprite picture processing unit modeled on
// the NES 2C02. The PPU keeps its pattern table, tilemap, attribute map,
// palette RAM and sprite table in fixed-size arrays and composites them into
// an RGBA frame one scanline at a time.
package ppu

import (
	"fmt"
)

// Display constants
const (
	DisplayWidth  = 256
	DisplayHeight = 240
)

// Tile and tilemap geometry. A tile is a "pattern" and the tilemap is a
// "nametable" in NES terms. The tilemap holds four screens worth of tiles.
const (
	TileWidth     = 8
	TileHeight    = 8
	TilemapWidth  = 64
	TilemapHeight = 60

	DisplayWidthInTiles  = DisplayWidth / TileWidth
	DisplayHeightInTiles = DisplayHeight / TileHeight

	attrmapWidth  = TilemapWidth / 2
	attrmapHeight = TilemapHeight / 2
)

// Memory sizes
const (
	PatternSize      = 16
	PatternTableSize = 0x2000
	NumPatterns      = PatternTableSize / PatternSize
	PaletteSize      = 0x20

	// SpritePaletteOffset is where the sprite groups start in palette RAM
	SpritePaletteOffset = 0x10

	tilemapSize = TilemapWidth * TilemapHeight
	attrmapSize = attrmapWidth * attrmapHeight
)

// Sprite capacities. The defaults are well beyond the 2C02; the hardware
// values are available through WithHardwareSpriteLimit.
const (
	NumSprites       = 1024
	MaxSpritesOnLine = 256

	HardwareNumSprites    = 64
	HardwareSpritesOnLine = 8
)

// PPU is the picture processing unit. All state is owned by one PPU and is
// only mutated between calls to Render.
type PPU struct {
	tilemap      [tilemapSize]uint8
	attrmap      [attrmapSize]uint8
	patternTable [PatternTableSize]uint8
	paletteRAM   [PaletteSize]uint8 // same layout as $3F00-$3F1F
	sprites      [NumSprites]Sprite

	// ScrollX and ScrollY offset the background in pixels. They are plain
	// fields written by the driving loop between frames.
	ScrollX int
	ScrollY int

	colors *ColorTable

	// Sprite evaluation limits
	spriteSlots    int
	spritesPerLine int
}

// Option configures a PPU at construction time.
type Option func(*PPU)

// WithColorTable replaces the default NTSC color table.
func WithColorTable(ct ColorTable) Option {
	return func(p *PPU) {
		p.colors = &ct
	}
}

// WithHardwareSpriteLimit restricts sprite evaluation to the 64 OAM slots
// and 8 sprites per scanline of the original hardware.
func WithHardwareSpriteLimit() Option {
	return func(p *PPU) {
		p.spriteSlots = HardwareNumSprites
		p.spritesPerLine = HardwareSpritesOnLine
	}
}

// New creates a PPU with blank patterns, a blank tilemap, zeroed palette RAM,
// every sprite disabled and zero scroll.
func New(opts ...Option) *PPU {
	ct := DefaultColorTable
	p := &PPU{
		colors:         &ct,
		spriteSlots:    NumSprites,
		spritesPerLine: MaxSpritesOnLine,
	}
	p.ClearSprites()

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// SpritesPerLine returns the per-scanline sprite cap in effect.
func (p *PPU) SpritesPerLine() int {
	return p.spritesPerLine
}

// SpriteSlots returns how many sprite slots are evaluated when rendering.
func (p *PPU) SpriteSlots() int {
	return p.spriteSlots
}

// SetPattern overwrites the pattern stored at index.
func (p *PPU) SetPattern(index int, pat Pattern) {
	checkIndex("pattern", index, NumPatterns)
	addr := index * PatternSize
	copy(p.patternTable[addr:addr+PatternSize], pat[:])
}

// Pattern returns a copy of the pattern stored at index.
func (p *PPU) Pattern(index int) Pattern {
	checkIndex("pattern", index, NumPatterns)
	var pat Pattern
	addr := index * PatternSize
	copy(pat[:], p.patternTable[addr:addr+PatternSize])
	return pat
}

// pixel samples a pattern straight out of the pattern table.
func (p *PPU) pixel(index int, x, y int) uint8 {
	b := p.patternTable[index*PatternSize+y*2+x/4]
	return (b >> pixelShift(x)) & 0x3
}

// SetTile sets the pattern index of the tilemap cell at (x, y).
func (p *PPU) SetTile(x, y int, pattern uint8) {
	checkTile(x, y)
	p.tilemap[y*TilemapWidth+x] = pattern
}

// Tile returns the pattern index of the tilemap cell at (x, y).
func (p *PPU) Tile(x, y int) uint8 {
	checkTile(x, y)
	return p.tilemap[y*TilemapWidth+x]
}

// SetAttribute selects the background palette group for the tile at (x, y).
// Attributes are shared by 2x2 tile blocks, packed four to a byte with the
// top-left tile in the most significant bits.
func (p *PPU) SetAttribute(x, y int, group uint8) {
	checkTile(x, y)
	addr, shift := attributeAddr(x, y)
	p.attrmap[addr] &^= 0x3 << shift
	p.attrmap[addr] |= (group & 0x3) << shift
}

// Attribute returns the background palette group for the tile at (x, y).
func (p *PPU) Attribute(x, y int) uint8 {
	checkTile(x, y)
	addr, shift := attributeAddr(x, y)
	return (p.attrmap[addr] >> shift) & 0x3
}

func attributeAddr(x, y int) (int, uint) {
	index := (y%2)*2 + x%2
	return (y/2)*attrmapWidth + x/2, uint(2 * (3 - index))
}

// SetCommonBGColor sets the universal background color at $3F00.
func (p *PPU) SetCommonBGColor(code uint8) {
	p.paletteRAM[0] = code
}

// SetBGColors sets the three opaque colors of background palette group 0-3.
func (p *PPU) SetBGColors(group uint8, colors [3]uint8) {
	checkIndex("palette group", int(group), 4)
	base := int(group) * 4
	copy(p.paletteRAM[base+1:base+4], colors[:])
}

// SetSpriteColors sets the three opaque colors of sprite palette group 0-3.
func (p *PPU) SetSpriteColors(group uint8, colors [3]uint8) {
	checkIndex("palette group", int(group), 4)
	base := SpritePaletteOffset + int(group)*4
	copy(p.paletteRAM[base+1:base+4], colors[:])
}

// PaletteRAM returns a copy of the 32 bytes of palette RAM.
func (p *PPU) PaletteRAM() [PaletteSize]uint8 {
	return p.paletteRAM
}

// bgColor resolves a background pixel to a color code. Pixel 0 is always the
// universal background color.
func (p *PPU) bgColor(pixel, group uint8) uint8 {
	if pixel == 0 {
		return p.paletteRAM[0]
	}
	return p.paletteRAM[int(group&0x3)*4+int(pixel&0x3)]
}

// spriteColor resolves an opaque sprite pixel to a color code. Pixel 0 is
// transparent and must be handled by the caller.
func (p *PPU) spriteColor(pixel, group uint8) uint8 {
	return p.paletteRAM[int(group&0x3)*4+SpritePaletteOffset+int(pixel&0x3)]
}

func checkIndex(what string, index, limit int) {
	if index < 0 || index >= limit {
		panic(fmt.Sprintf("ppu: %s index %d out of range [0,%d)", what, index, limit))
	}
}

func checkTile(x, y int) {
	if x < 0 || x >= TilemapWidth || y < 0 || y >= TilemapHeight {
		panic(fmt.Sprintf("ppu: tile (%d,%d) outside %dx%d tilemap", x, y, TilemapWidth, TilemapHeight))
	}
}
