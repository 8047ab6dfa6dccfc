package holga

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// gradient returns a PNG-encoded w x h image with a diagonal color gradient.
func gradient(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(255 * x / w),
				G: uint8(255 * y / h),
				B: uint8(255 * (x + y) / (w + h)),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// frames returns n valid frames; frame i is (16+i) pixels wide so results can be traced back.
func frames(t *testing.T, n int) []RawFrame {
	t.Helper()
	fs := make([]RawFrame, n)
	for i := range fs {
		fs[i] = NewRawFrame(gradient(t, 16+i, 12), Exposure{Path: fmt.Sprintf("F%d.png", i)})
	}
	return fs
}
