package ppu

// SpriteDisabledY parks a sprite below every visible scanline. An 8 pixel
// tall sprite at Y=255 covers lines 255-262, none of which are in 0-239, so a
// slot holding this value is never evaluated onto a line.
const SpriteDisabledY = 255

// Sprite is one entry of the sprite table.
type Sprite struct {
	X      uint8
	Y      uint8
	Tile   uint8
	Attrib uint8 // sprite palette group, 0-3

	// Reserved; the rasterizer does not flip sprites.
	FlipH bool
	FlipV bool
}

// DefaultSprite returns the disabled sprite every slot starts with.
func DefaultSprite() Sprite {
	return Sprite{Y: SpriteDisabledY}
}

// covers reports whether the sprite's 8 pixel tall extent contains line dy.
func (s *Sprite) covers(dy int) bool {
	return dy >= int(s.Y) && dy < int(s.Y)+TileHeight
}

// ClearSprites resets every slot to the disabled default. The driving loop
// calls this at the start of each frame and then repopulates used slots.
func (p *PPU) ClearSprites() {
	for i := range p.sprites {
		p.sprites[i] = DefaultSprite()
	}
}

// SetSprite places a sprite in slot index. A position outside [0,256) on
// either axis disables the slot instead.
func (p *PPU) SetSprite(index int, x, y int, tile, attrib uint8) {
	checkIndex("sprite", index, NumSprites)

	s := DefaultSprite()
	if x >= 0 && x < 256 && y >= 0 && y < 256 {
		s.X = uint8(x)
		s.Y = uint8(y)
		s.Tile = tile
		s.Attrib = attrib
	}
	p.sprites[index] = s
}

// Sprite returns the contents of slot index.
func (p *PPU) Sprite(index int) Sprite {
	checkIndex("sprite", index, NumSprites)
	return p.sprites[index]
}

// evaluateLine fills dst with the slots visible on line dy, in ascending slot
// order, stopping at the per-line cap. It returns the number found.
func (p *PPU) evaluateLine(dy int, dst []int) int {
	n := 0
	for i := 0; i < p.spriteSlots; i++ {
		if !p.sprites[i].covers(dy) {
			continue
		}
		dst[n] = i
		n++
		if n >= p.spritesPerLine {
			break
		}
	}
	return n
}

// LineSprites returns the slots the rasterizer will consider on line dy.
func (p *PPU) LineSprites(dy int) []int {
	buf := make([]int, p.spritesPerLine)
	n := p.evaluateLine(dy, buf)
	return buf[:n]
}
