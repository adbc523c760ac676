package ppu

import (
	"image"
)

// Pattern sheet layout: 16 patterns per row.
const (
	sheetColumns = 16
	sheetRows    = NumPatterns / sheetColumns
)

// PatternSheet draws every pattern in the table using one palette group.
// When sprite is true the sprite group is used and pixel 0 shows the
// universal background color, as it would behind a sprite. Patterns 256 and
// up are drawn too even though tiles and sprites only address the first 256.
func (p *PPU) PatternSheet(group uint8, sprite bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, sheetColumns*TileWidth, sheetRows*TileHeight))

	for index := 0; index < NumPatterns; index++ {
		ox := (index % sheetColumns) * TileWidth
		oy := (index / sheetColumns) * TileHeight
		for y := 0; y < TileHeight; y++ {
			for x := 0; x < TileWidth; x++ {
				pixel := p.pixel(index, x, y)
				code := p.bgColor(pixel, group)
				if sprite && pixel != 0 {
					code = p.spriteColor(pixel, group)
				}
				img.SetRGBA(ox+x, oy+y, p.colors.RGBA(code))
			}
		}
	}

	return img
}

// TilemapImage draws the whole background, all four screens, without
// sprites or scroll.
func (p *PPU) TilemapImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, tilemapPixelWidth, tilemapPixelHeight))

	for ty := 0; ty < TilemapHeight; ty++ {
		for tx := 0; tx < TilemapWidth; tx++ {
			tile := p.tilemap[ty*TilemapWidth+tx]
			group := p.Attribute(tx, ty)
			for y := 0; y < TileHeight; y++ {
				for x := 0; x < TileWidth; x++ {
					code := p.bgColor(p.pixel(int(tile), x, y), group)
					img.SetRGBA(tx*TileWidth+x, ty*TileHeight+y, p.colors.RGBA(code))
				}
			}
		}
	}

	return img
}
