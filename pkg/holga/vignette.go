package holga

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/math/f64"
	"github.com/anthonynsimon/bild/parallel"
)

// maxFalloff is how much light the corners lose at intensity 1.
const maxFalloff = 0.6

// vignette darkens src by distance from its center. Distances are normalized so that the corners
// sit at 1; pixels beyond radius get the full falloff.
func vignette(src *image.RGBA, radius, intensity float64) *image.RGBA {
	dst := clone.AsRGBA(src)
	if radius <= 0 || intensity <= 0 {
		return dst
	}

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	cx, cy := float64(w)/2, float64(h)/2
	diag := math.Hypot(cx, cy)
	if diag == 0 {
		return dst
	}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			dy := float64(y) + 0.5 - cy
			row := y * dst.Stride
			for x := 0; x < w; x++ {
				dx := float64(x) + 0.5 - cx
				t := f64.Clamp(math.Hypot(dx, dy)/diag/radius, 0, 1)
				// smoothstep
				t = t * t * (3 - 2*t)
				scale := 1 - f64.Clamp(intensity*maxFalloff*t, 0, 1)

				pos := row + x*4
				for c := 0; c < 3; c++ {
					dst.Pix[pos+c] = uint8(f64.Clamp(float64(dst.Pix[pos+c])*scale+0.5, 0, 255))
				}
			}
		}
	})

	return dst
}
