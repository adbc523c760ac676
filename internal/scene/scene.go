// Package scene drives the PPU with a small Lightning Dodge demo: a player
// walking along the ground under drifting clouds, with a frame counter in
// the score bar.
package scene

import (
	"fmt"

	"lightningdodge/internal/assets"
	"lightningdodge/internal/input"
	"lightningdodge/internal/ppu"
)

// Layout and motion constants
const (
	GroundYTile   = ppu.DisplayHeightInTiles - 4
	ScorebarYTile = ppu.DisplayHeightInTiles - 1

	GroundY = GroundYTile * ppu.TileHeight
	PlayerY = GroundY - ppu.TileHeight

	PlayerSpeed = 2
	PlayerMinX  = 0
	PlayerMaxX  = ppu.DisplayWidth - ppu.TileWidth

	CloudSpeed      = 1
	CloudLeftBound  = 8
	CloudRightBound = 228

	LightningColorCycleTime = 5
)

type cloud struct {
	x, y int
	dir  int // -1 left, 1 right
}

// Scene owns the demo state and writes it into a PPU once per tick
type Scene struct {
	ppu *ppu.PPU

	frame   uint64
	playerX int
	clouds  []cloud

	lightningTimer int
	lightningSet   int
}

// New creates a scene drawing into p and resets it.
func New(p *ppu.PPU) (*Scene, error) {
	s := &Scene{ppu: p}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset clears the PPU and redraws the static background.
func (s *Scene) Reset() error {
	p := s.ppu

	s.frame = 0
	s.playerX = ppu.DisplayWidth / 2
	s.clouds = []cloud{
		{x: 50, y: 20, dir: 1},
		{x: 170, y: 44, dir: -1},
	}
	s.lightningTimer = 0
	s.lightningSet = 0

	for y := 0; y < ppu.TilemapHeight; y++ {
		for x := 0; x < ppu.TilemapWidth; x++ {
			p.SetTile(x, y, assets.BlankPattern)
			p.SetAttribute(x, y, 0)
		}
	}

	if err := assets.LoadAll(p); err != nil {
		return fmt.Errorf("loading patterns: %w", err)
	}
	assets.SetPalettes(p)

	for y := GroundYTile + 1; y < ppu.DisplayHeightInTiles; y++ {
		for x := 0; x < ppu.DisplayWidthInTiles; x++ {
			p.SetTile(x, y, assets.GroundPattern)
			p.SetAttribute(x, y, assets.GroundAttrib)
		}
	}
	for x := 0; x < ppu.DisplayWidthInTiles; x++ {
		p.SetTile(x, GroundYTile, assets.GroundTopPattern)
		p.SetAttribute(x, GroundYTile, assets.GroundAttrib)
	}

	p.ClearSprites()
	s.drawScorebar()
	return nil
}

// Tick advances the scene by one frame. It must be called once every 60th
// of a second.
func (s *Scene) Tick(in input.State) {
	p := s.ppu
	s.frame++

	dx, _ := in.Direction()
	s.playerX += dx * PlayerSpeed
	if s.playerX < PlayerMinX {
		s.playerX = PlayerMinX
	} else if s.playerX > PlayerMaxX {
		s.playerX = PlayerMaxX
	}

	s.lightningTimer++
	if s.lightningTimer >= LightningColorCycleTime {
		s.lightningTimer = 0
		s.lightningSet = (s.lightningSet + 1) % len(assets.LightningColorSets)
		p.SetSpriteColors(assets.LightningAttrib, assets.LightningColorSets[s.lightningSet])
	}

	p.ClearSprites()
	slot := 0

	p.SetSprite(slot, s.playerX, PlayerY, assets.PlayerPattern, assets.PlayerAttrib)
	p.SetSprite(slot+1, s.playerX, PlayerY-ppu.TileHeight, assets.PlayerTopPattern, assets.PlayerAttrib)
	slot += 2

	for i := range s.clouds {
		c := &s.clouds[i]
		c.x += c.dir * CloudSpeed
		if c.x < CloudLeftBound {
			c.x = CloudLeftBound
			c.dir = 1
		} else if c.x > CloudRightBound {
			c.x = CloudRightBound
			c.dir = -1
		}

		p.SetSprite(slot, c.x, c.y, assets.CloudLeftPattern, assets.CloudAttrib)
		p.SetSprite(slot+1, c.x+ppu.TileWidth, c.y, assets.CloudRightPattern, assets.CloudAttrib)
		p.SetSprite(slot+2, c.x+ppu.TileWidth/2, c.y+ppu.TileHeight, assets.LightningPattern, assets.LightningAttrib)
		slot += 3
	}

	s.drawScorebar()
}

// drawScorebar writes the frame counter right-aligned into the bottom row
func (s *Scene) drawScorebar() {
	p := s.ppu
	for x := 0; x < ppu.DisplayWidthInTiles; x++ {
		p.SetTile(x, ScorebarYTile, assets.BlankPattern)
		p.SetAttribute(x, ScorebarYTile, assets.GraysAttrib)
	}

	n := s.frame
	for x := ppu.DisplayWidthInTiles - 1; x >= 0; x-- {
		p.SetTile(x, ScorebarYTile, assets.DigitPattern(int(n%10)))
		n /= 10
		if n == 0 {
			break
		}
	}
}

// Frame returns the number of ticks since the last reset.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// PlayerX returns the player's horizontal position in pixels.
func (s *Scene) PlayerX() int {
	return s.playerX
}

// LightningColorSet returns which lightning color set is active.
func (s *Scene) LightningColorSet() int {
	return s.lightningSet
}
