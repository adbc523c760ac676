package scene

import (
	"testing"

	"lightningdodge/internal/assets"
	"lightningdodge/internal/input"
	"lightningdodge/internal/ppu"
)

func newTestScene(t *testing.T) (*Scene, *ppu.PPU) {
	t.Helper()
	p := ppu.New()
	s, err := New(p)
	if err != nil {
		t.Fatalf("Failed to create scene: %v", err)
	}
	return s, p
}

func TestSceneReset(t *testing.T) {
	s, p := newTestScene(t)

	if s.Frame() != 0 {
		t.Errorf("Expected frame 0, got %d", s.Frame())
	}
	if s.PlayerX() != ppu.DisplayWidth/2 {
		t.Errorf("Expected player at %d, got %d", ppu.DisplayWidth/2, s.PlayerX())
	}

	for x := 0; x < ppu.DisplayWidthInTiles; x++ {
		if p.Tile(x, GroundYTile) != assets.GroundTopPattern {
			t.Fatalf("Expected ground top at (%d,%d)", x, GroundYTile)
		}
		if p.Tile(x, GroundYTile+1) != assets.GroundPattern {
			t.Fatalf("Expected ground at (%d,%d)", x, GroundYTile+1)
		}
		if p.Attribute(x, GroundYTile) != assets.GroundAttrib {
			t.Fatalf("Expected ground attribute at (%d,%d)", x, GroundYTile)
		}
		if p.Attribute(x, ScorebarYTile) != assets.GraysAttrib {
			t.Fatalf("Expected grays attribute at (%d,%d)", x, ScorebarYTile)
		}
	}

	if p.Tile(0, 0) != assets.BlankPattern || p.Tile(ppu.TilemapWidth-1, ppu.TilemapHeight-1) != assets.BlankPattern {
		t.Error("Expected blank tiles away from the ground")
	}

	if p.Tile(ppu.DisplayWidthInTiles-1, ScorebarYTile) != assets.DigitPattern(0) {
		t.Error("Expected frame counter 0 in the score bar")
	}

	for i := 0; i < 8; i++ {
		if p.Sprite(i) != ppu.DefaultSprite() {
			t.Fatalf("Expected sprite %d disabled after reset", i)
		}
	}
}

func TestSceneResetClearsPreviousState(t *testing.T) {
	s, p := newTestScene(t)
	p.SetTile(10, 10, 99)
	p.SetAttribute(10, 10, 3)
	for i := 0; i < 20; i++ {
		s.Tick(input.State(input.ButtonRight))
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if p.Tile(10, 10) != assets.BlankPattern || p.Attribute(10, 10) != 0 {
		t.Error("Reset did not clear the tilemap")
	}
	if s.Frame() != 0 || s.PlayerX() != ppu.DisplayWidth/2 {
		t.Errorf("Reset did not restore state: frame %d player %d", s.Frame(), s.PlayerX())
	}
}

func TestTickMovesPlayer(t *testing.T) {
	s, p := newTestScene(t)

	s.Tick(input.State(input.ButtonRight))

	want := ppu.DisplayWidth/2 + PlayerSpeed
	if s.PlayerX() != want {
		t.Fatalf("Expected player at %d, got %d", want, s.PlayerX())
	}

	body := p.Sprite(0)
	if int(body.X) != want || int(body.Y) != PlayerY || body.Tile != assets.PlayerPattern {
		t.Errorf("Unexpected player sprite %+v", body)
	}
	top := p.Sprite(1)
	if int(top.Y) != PlayerY-ppu.TileHeight || top.Tile != assets.PlayerTopPattern {
		t.Errorf("Unexpected player top sprite %+v", top)
	}
}

func TestTickClampsPlayer(t *testing.T) {
	s, _ := newTestScene(t)

	for i := 0; i < ppu.DisplayWidth; i++ {
		s.Tick(input.State(input.ButtonLeft))
	}
	if s.PlayerX() != PlayerMinX {
		t.Errorf("Expected player clamped to %d, got %d", PlayerMinX, s.PlayerX())
	}

	for i := 0; i < ppu.DisplayWidth; i++ {
		s.Tick(input.State(input.ButtonRight))
	}
	if s.PlayerX() != PlayerMaxX {
		t.Errorf("Expected player clamped to %d, got %d", PlayerMaxX, s.PlayerX())
	}
}

func TestTickMovesClouds(t *testing.T) {
	s, p := newTestScene(t)

	s.Tick(0)

	left := p.Sprite(2)
	right := p.Sprite(3)
	if left.X != 51 || left.Y != 20 || left.Tile != assets.CloudLeftPattern {
		t.Errorf("Unexpected cloud sprite %+v", left)
	}
	if right.X != 59 || right.Tile != assets.CloudRightPattern {
		t.Errorf("Unexpected cloud right sprite %+v", right)
	}

	for i := 0; i < 1000; i++ {
		s.Tick(0)
		for _, c := range s.clouds {
			if c.x < CloudLeftBound || c.x > CloudRightBound {
				t.Fatalf("Cloud escaped bounds at tick %d: %d", s.Frame(), c.x)
			}
		}
	}
}

func TestLightningColorCycle(t *testing.T) {
	s, p := newTestScene(t)

	for i := 0; i < LightningColorCycleTime-1; i++ {
		s.Tick(0)
	}
	if s.LightningColorSet() != 0 {
		t.Fatalf("Expected color set 0 before cycle, got %d", s.LightningColorSet())
	}

	s.Tick(0)
	if s.LightningColorSet() != 1 {
		t.Fatalf("Expected color set 1, got %d", s.LightningColorSet())
	}

	ram := p.PaletteRAM()
	base := ppu.SpritePaletteOffset + int(assets.LightningAttrib)*4
	if ram[base+1] != 0x28 || ram[base+2] != 0x28 || ram[base+3] != 0x18 {
		t.Errorf("Unexpected lightning colors %v", ram[base+1:base+4])
	}

	for i := 0; i < 2*LightningColorCycleTime; i++ {
		s.Tick(0)
	}
	if s.LightningColorSet() != 0 {
		t.Errorf("Expected color set to wrap to 0, got %d", s.LightningColorSet())
	}
}

func TestScorebarShowsFrame(t *testing.T) {
	s, p := newTestScene(t)

	for i := 0; i < 123; i++ {
		s.Tick(0)
	}

	row := ScorebarYTile
	last := ppu.DisplayWidthInTiles - 1
	want := []uint8{assets.DigitPattern(1), assets.DigitPattern(2), assets.DigitPattern(3)}
	for i, tile := range want {
		if got := p.Tile(last-2+i, row); got != tile {
			t.Errorf("Score tile %d = %d, want %d", i, got, tile)
		}
	}
	if p.Tile(last-3, row) != assets.BlankPattern {
		t.Error("Expected blank tile left of the score")
	}
}

func TestSceneRendersGround(t *testing.T) {
	_, p := newTestScene(t)

	img := p.NewFrame()
	p.Render(img)

	// Ground top's first row is solid pixel 3 of the ground group
	want := ppu.DefaultColorTable.RGBA(assets.GroundColors[2])
	if got := img.RGBAAt(0, GroundY); got != want {
		t.Errorf("Ground pixel = %v, want %v", got, want)
	}

	sky := ppu.DefaultColorTable.RGBA(assets.BackgroundColor)
	if got := img.RGBAAt(0, 0); got != sky {
		t.Errorf("Sky pixel = %v, want %v", got, sky)
	}
}
