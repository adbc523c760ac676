package debug

import (
	"fmt"
	"image"
	"path/filepath"

	"lightningdodge/internal/ppu"
)

// DumpPPU writes the pattern table, once per background and sprite palette
// group, and the whole tilemap as PNGs into dir. It returns the paths
// written.
func DumpPPU(dir string, p *ppu.PPU) ([]string, error) {
	type dump struct {
		name string
		img  image.Image
	}

	var dumps []dump
	for group := uint8(0); group < 4; group++ {
		dumps = append(dumps,
			dump{fmt.Sprintf("patterns_bg%d.png", group), ScaleFrame(p.PatternSheet(group, false), 2)},
			dump{fmt.Sprintf("patterns_sprite%d.png", group), ScaleFrame(p.PatternSheet(group, true), 2)},
		)
	}
	dumps = append(dumps, dump{"tilemap.png", p.TilemapImage()})

	paths := make([]string, 0, len(dumps))
	for _, d := range dumps {
		path := filepath.Join(dir, d.name)
		if err := WritePNG(path, d.img); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}
