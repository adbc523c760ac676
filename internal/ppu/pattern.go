package ppu

// Pattern is an 8x8 tile with 2 bits per pixel, packed row-major four pixels
// to a byte with the leftmost pixel in the most significant bits.
type Pattern [PatternSize]uint8

// Pixel returns the 2-bit value of the pixel at (x, y).
func (pat *Pattern) Pixel(x, y int) uint8 {
	return (pat[y*2+x/4] >> pixelShift(x)) & 0x3
}

// SetPixel stores v&3 at (x, y) without touching any other pixel.
func (pat *Pattern) SetPixel(x, y int, v uint8) {
	b := &pat[y*2+x/4]
	shift := pixelShift(x)
	*b &^= 0x3 << shift
	*b |= (v & 0x3) << shift
}

func pixelShift(x int) uint {
	return uint(2 * (3 - x%4))
}
