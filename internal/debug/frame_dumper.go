// Package debug provides frame dumping utilities
package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// FrameDumper writes every Nth frame to a PNG, up to a maximum number of
// dumps
type FrameDumper struct {
	outputDir    string
	dumpEnabled  bool
	dumpCount    int
	maxDumps     int
	dumpInterval int // Dump every N frames
	scale        int
	caption      bool
}

// NewFrameDumper creates a disabled frame dumper writing into outputDir
func NewFrameDumper(outputDir string) *FrameDumper {
	return &FrameDumper{
		outputDir:    outputDir,
		maxDumps:     10,
		dumpInterval: 1,
		scale:        2,
		caption:      true,
	}
}

// Enable activates frame dumping and creates the output directory
func (fd *FrameDumper) Enable() error {
	if err := os.MkdirAll(fd.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}
	fd.dumpEnabled = true
	return nil
}

// Disable deactivates frame dumping
func (fd *FrameDumper) Disable() {
	fd.dumpEnabled = false
}

// SetMaxDumps sets the maximum number of frames to dump
func (fd *FrameDumper) SetMaxDumps(max int) {
	fd.maxDumps = max
}

// SetDumpInterval sets the interval between frame dumps
func (fd *FrameDumper) SetDumpInterval(interval int) {
	if interval < 1 {
		interval = 1
	}
	fd.dumpInterval = interval
}

// SetScale sets the integer zoom applied to dumped frames
func (fd *FrameDumper) SetScale(scale int) {
	if scale < 1 {
		scale = 1
	}
	fd.scale = scale
}

// SetCaption enables or disables the frame number caption
func (fd *FrameDumper) SetCaption(enabled bool) {
	fd.caption = enabled
}

// DumpCount returns the number of frames written so far
func (fd *FrameDumper) DumpCount() int {
	return fd.dumpCount
}

// DumpFrame writes frame if dumping is enabled, frameNum falls on the dump
// interval and the dump limit has not been reached. It returns the path
// written, or "" if the frame was skipped.
func (fd *FrameDumper) DumpFrame(frame *image.RGBA, frameNum uint64) (string, error) {
	if !fd.dumpEnabled {
		return "", nil
	}
	if frameNum%uint64(fd.dumpInterval) != 0 {
		return "", nil
	}
	if fd.dumpCount >= fd.maxDumps {
		return "", nil
	}

	img := ScaleFrame(frame, fd.scale)
	if fd.caption {
		DrawCaption(img, fmt.Sprintf("frame %d", frameNum))
	}

	path := filepath.Join(fd.outputDir, fmt.Sprintf("frame_%06d.png", frameNum))
	if err := WritePNG(path, img); err != nil {
		return "", err
	}

	fd.dumpCount++
	glog.V(1).Infof("[DEBUG] Dumped frame %d to %s (%d/%d)", frameNum, path, fd.dumpCount, fd.maxDumps)
	return path, nil
}

// ScaleFrame returns a copy of src enlarged by an integer factor with
// nearest neighbor sampling so pixels stay sharp
func ScaleFrame(src image.Image, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// DrawCaption writes s in the top-left corner of img with a dark shadow so
// it stays readable over any background
func DrawCaption(img draw.Image, s string) {
	dot := fixed.Point26_6{X: fixed.I(4), Y: fixed.I(4 + 12)}

	for oy := -1; oy <= 1; oy++ {
		for ox := -1; ox <= 1; ox++ {
			(&font.Drawer{
				Dst:  img,
				Src:  image.Black,
				Face: inconsolata.Bold8x16,
				Dot:  fixed.Point26_6{X: dot.X + fixed.I(ox), Y: dot.Y + fixed.I(oy)},
			}).DrawString(s)
		}
	}

	(&font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: inconsolata.Bold8x16,
		Dot:  dot,
	}).DrawString(s)
}

// WritePNG encodes img to path, creating parent directories
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return file.Close()
}
