package holga

import (
	"bytes"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"k8s.io/klog/v2"
)

// Filter develops raw frames with a simulated film look.
type Filter struct {
	src     *Source
	encoder imgio.Encoder
}

// NewFilter returns a filter drawing parameters from src and encoding JPEGs at quality.
func NewFilter(src *Source, quality int) *Filter {
	return &Filter{src: src, encoder: imgio.JPEGEncoder(quality)}
}

// Sample draws parameters for one frame.
func (f *Filter) Sample() Params {
	return f.src.Sample()
}

// Apply develops a frame with freshly sampled parameters.
func (f *Filter) Apply(rf RawFrame) (*ProcessedFrame, error) {
	return f.ApplyWith(rf, f.Sample())
}

// ApplyWith develops a frame with the given parameters. It never modifies rf.
func (f *Filter) ApplyWith(rf RawFrame, p Params) (*ProcessedFrame, error) {
	src, err := rf.Decode()
	if err != nil {
		return nil, &DecodeError{Path: rf.Path, Err: err}
	}

	klog.V(1).Infof("developing %s (%dx%d): %s", rf.Path, src.Bounds().Dx(), src.Bounds().Dy(), p)

	img := colorAdjust(src, p)
	img = blur.Gaussian(img, p.BlurRadius)
	img = vignette(img, p.VignetteRadius, p.VignetteIntensity)

	var buf bytes.Buffer
	if err := f.encoder(&buf, img); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &ProcessedFrame{
		Params:   p,
		Image:    img,
		JPEG:     buf.Bytes(),
		Exposure: rf.Exposure,
	}, nil
}

// colorAdjust applies saturation, brightness and contrast, in that order. Brightness scales each
// channel by 1+p.Brightness rather than adding an offset.
func colorAdjust(src image.Image, p Params) *image.RGBA {
	img := adjust.Saturation(src, p.Saturation-1)
	img = adjust.Brightness(img, p.Brightness)
	return adjust.Contrast(img, p.Contrast-1)
}
