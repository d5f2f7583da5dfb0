package y4m

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kpfaulkner/videoframe-go/picture"
)

// Writer encodes pictures as a YUV4MPEG2 stream.
type Writer struct {
	w      *bufio.Writer
	header Header
}

// NewWriter writes the stream header to w.
func NewWriter(w io.Writer, header Header) (*Writer, error) {
	if _, ok := chromaTag(header.PixelFormat); !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, header.PixelFormat)
	}
	if err := picture.CheckSize(header.Width, header.Height); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	if header.FrameRateDen == 0 {
		header.FrameRateNum, header.FrameRateDen = 25, 1
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(header.String() + "\n"); err != nil {
		return nil, err
	}
	return &Writer{w: bw, header: header}, nil
}

// WriteFrame writes pb, which must match the stream geometry and format.
func (w *Writer) WriteFrame(pb *picture.Buffer) error {
	if pb.IsReleased() {
		return picture.ErrReleased
	}
	if pb.Layout() != w.header.Size() || pb.PixelFormat() != w.header.PixelFormat {
		return fmt.Errorf("%w: got %v, stream is %v %v", ErrInvalidFrame, pb, w.header.Size(), w.header.PixelFormat)
	}

	if _, err := w.w.WriteString(frameMagic + "\n"); err != nil {
		return err
	}
	desc, _ := w.header.PixelFormat.Descriptor()
	for p := 0; p < desc.Planes; p++ {
		width := desc.PlaneWidth(p, int(w.header.Width))
		rows := desc.PlaneHeight(p, int(w.header.Height))
		plane, linesize := pb.Plane(p), pb.Linesize(p)
		for y := 0; y < rows; y++ {
			if _, err := w.w.Write(plane[y*linesize : y*linesize+width]); err != nil {
				return err
			}
		}
	}
	return w.w.Flush()
}
