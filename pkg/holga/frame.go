package holga

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/anthonynsimon/bild/clone"
)

// Exposure describes how and when a frame was captured.
type Exposure struct {
	Path  string
	Taken time.Time
	Make  string
	Model string
}

// RawFrame is a captured, still encoded, image.
type RawFrame struct {
	data []byte
	Exposure
}

// NewRawFrame returns a frame holding a private copy of data.
func NewRawFrame(data []byte, e Exposure) RawFrame {
	return RawFrame{data: bytes.Clone(data), Exposure: e}
}

// Len returns the size of the encoded image.
func (f RawFrame) Len() int {
	return len(f.data)
}

// Decode decodes the frame into an image.
func (f RawFrame) Decode() (image.Image, error) {
	if len(f.data) == 0 {
		return nil, errors.New("empty buffer")
	}

	img, _, err := image.Decode(bytes.NewReader(f.data))
	if err != nil {
		return nil, fmt.Errorf("image.Decode: %w", err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("no pixels in %+v", b)
	}
	return img, nil
}

// ProcessedFrame is a developed frame.
type ProcessedFrame struct {
	// Index is the position of the source frame on its roll.
	Index  int
	Params Params
	Image  *image.RGBA
	// JPEG is the encoded result.
	JPEG []byte
	Exposure
}

// Clone returns a copy of the frame that shares no buffers with pf.
func (pf *ProcessedFrame) Clone() *ProcessedFrame {
	c := *pf
	if pf.Image != nil {
		c.Image = clone.AsRGBA(pf.Image)
	}
	c.JPEG = bytes.Clone(pf.JPEG)
	return &c
}
