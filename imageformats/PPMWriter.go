package imageformats

import (
	"errors"
	"fmt"
	"io"

	"github.com/kpfaulkner/videoframe-go/imagedata"
)

var ErrUnsupportedBitmap = errors.New("unsupported bitmap format")

// channelLayout returns the byte offsets of R, G and B (or the single grey
// sample) within a pixel, and the pixel step.
func channelLayout(bitmap *imagedata.ImageData) ([3]int, int, error) {
	if bitmap.PixelFormat == imagedata.GRAY8 {
		return [3]int{}, 1, nil
	}
	desc, ok := bitmap.PixelFormat.ToPixelFormat().Descriptor()
	if !ok {
		return [3]int{}, 0, fmt.Errorf("%w: %d", ErrUnsupportedBitmap, bitmap.PixelFormat)
	}
	return [3]int{desc.RGBAOffsets[0], desc.RGBAOffsets[1], desc.RGBAOffsets[2]}, bitmap.PixelFormat.BytesPerPixel(), nil
}

// WritePPM writes a bitmap as binary PPM (P6), or PGM (P5) for GRAY8.
// Alpha is dropped.
func WritePPM(bitmap *imagedata.ImageData, output io.Writer) error {

	gray := bitmap.PixelFormat == imagedata.GRAY8
	width := int(bitmap.Size.Width)
	height := int(bitmap.Size.Height)

	magic := "P5"
	cCount := 1
	if !gray {
		magic = "P6"
		cCount = 3
	}

	offsets, step, err := channelLayout(bitmap)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%s\n%d %d\n255\n", magic, width, height)
	if _, err := output.Write([]byte(header)); err != nil {
		return err
	}

	line := make([]byte, width*cCount)
	for y := 0; y < height; y++ {
		row := bitmap.Data[y*bitmap.Stride:]
		for x := 0; x < width; x++ {
			for c := 0; c < cCount; c++ {
				line[x*cCount+c] = row[x*step+offsets[c]]
			}
		}
		if _, err := output.Write(line); err != nil {
			return err
		}
	}
	return nil
}
