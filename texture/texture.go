// Package texture generates the procedural RGBA8 patterns cubes are drawn
// with.
package texture

const (
	Size          = 128
	BytesPerPixel = 4
	BytesPerRow   = Size * BytesPerPixel

	light = 255
	dark  = 80
)

// Pattern slots. Cubes on the Untinted slot ignore their category colour.
const (
	Checkerboard = iota
	Stripes
	Dots
	Count
)

const Untinted = Dots

// Generate returns the texels of pattern p, Size*Size RGBA8 pixels, row major.
func Generate(p int) []uint8 {
	switch p {
	case Checkerboard:
		return fill(func(x, y int) uint8 {
			if ((x>>4)&1)^((y>>4)&1) != 0 {
				return light
			}
			return dark
		})
	case Stripes:
		return fill(func(x, y int) uint8 {
			if (y>>3)&1 != 0 {
				return light
			}
			return dark
		})
	case Dots:
		const cell, radius = 16, 5
		return fill(func(x, y int) uint8 {
			cx := x%cell - cell/2
			cy := y%cell - cell/2
			if cx*cx+cy*cy <= radius*radius {
				return light
			}
			return dark
		})
	}
	return nil
}

// All returns every pattern indexed by slot.
func All() [][]uint8 {
	out := make([][]uint8, Count)
	for i := range out {
		out[i] = Generate(i)
	}
	return out
}

func fill(grey func(x, y int) uint8) []uint8 {
	texels := make([]uint8, Size*Size*BytesPerPixel)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			i := (y*Size + x) * BytesPerPixel
			c := grey(x, y)
			texels[i], texels[i+1], texels[i+2] = c, c, c
			texels[i+3] = 255
		}
	}
	return texels
}
