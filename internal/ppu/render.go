package ppu

import (
	"fmt"
	"image"
)

// Pixel extent of the tilemap. Scrolled coordinates wrap around it.
const (
	tilemapPixelWidth  = TilemapWidth * TileWidth
	tilemapPixelHeight = TilemapHeight * TileHeight
)

// NewFrame allocates an image sized for Render.
func (p *PPU) NewFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, DisplayWidth, DisplayHeight))
}

// Render draws a complete frame into img, which must cover exactly
// DisplayWidth x DisplayHeight starting at the origin. Every pixel is
// written; nothing carries over from a previous frame and the PPU state is
// not modified.
func (p *PPU) Render(img *image.RGBA) {
	if img.Rect != image.Rect(0, 0, DisplayWidth, DisplayHeight) {
		panic(fmt.Sprintf("ppu: frame bounds %v, want %dx%d", img.Rect, DisplayWidth, DisplayHeight))
	}

	lineSprites := make([]int, p.spritesPerLine)

	for dy := 0; dy < DisplayHeight; dy++ {
		worldY := wrap(dy+p.ScrollY, tilemapPixelHeight)
		tileY, subtileY := worldY/TileHeight, worldY%TileHeight

		n := p.evaluateLine(dy, lineSprites)
		onLine := lineSprites[:n]

		row := img.Pix[dy*img.Stride : dy*img.Stride+DisplayWidth*4]
		for dx := 0; dx < DisplayWidth; dx++ {
			code, ok := p.spritePixel(onLine, dx, dy)
			if !ok {
				worldX := wrap(dx+p.ScrollX, tilemapPixelWidth)
				tileX, subtileX := worldX/TileWidth, worldX%TileWidth

				tile := p.tilemap[tileY*TilemapWidth+tileX]
				pixel := p.pixel(int(tile), subtileX, subtileY)
				addr, shift := attributeAddr(tileX, tileY)
				code = p.bgColor(pixel, (p.attrmap[addr]>>shift)&0x3)
			}

			c := p.colors.RGBA(code)
			px := row[dx*4 : dx*4+4]
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		}
	}
}

// spritePixel returns the color code of the first opaque sprite pixel at
// (dx, dy). Lower slots win; a transparent pixel falls through to the next
// sprite.
func (p *PPU) spritePixel(onLine []int, dx, dy int) (uint8, bool) {
	for _, i := range onLine {
		s := &p.sprites[i]
		if dx < int(s.X) || dx >= int(s.X)+TileWidth {
			continue
		}
		pixel := p.pixel(int(s.Tile), dx-int(s.X), dy-int(s.Y))
		if pixel != 0 {
			return p.spriteColor(pixel, s.Attrib), true
		}
	}
	return 0, false
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
