package imageformats

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kpfaulkner/videoframe-go/imagedata"
)

// WritePFM writes a bitmap as a little endian portable float map with samples
// scaled to [0,1]. Rows are written bottom up as the format requires.
func WritePFM(bitmap *imagedata.ImageData, output io.Writer) error {

	gray := bitmap.PixelFormat == imagedata.GRAY8
	width := int(bitmap.Size.Width)
	height := int(bitmap.Size.Height)

	pf := "Pf"
	if !gray {
		pf = "PF"
	}
	offsets, step, err := channelLayout(bitmap)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%s\n%d %d\n-1.0\n", pf, width, height)
	if _, err := output.Write([]byte(header)); err != nil {
		return err
	}
	cCount := 1
	if !gray {
		cCount = 3
	}

	var buf bytes.Buffer
	samples := make([]float32, width*cCount)
	for y := height - 1; y >= 0; y-- {
		row := bitmap.Data[y*bitmap.Stride:]
		for x := 0; x < width; x++ {
			for c := 0; c < cCount; c++ {
				samples[x*cCount+c] = float32(row[x*step+offsets[c]]) / 255
			}
		}
		buf.Reset()
		if err := binary.Write(&buf, binary.LittleEndian, samples); err != nil {
			return err
		}
		if _, err := output.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
