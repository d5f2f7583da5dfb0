package y4m

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kpfaulkner/videoframe-go/picture"
	log "github.com/sirupsen/logrus"
)

// maxLineLength bounds header and frame lines so a corrupt stream cannot
// make the reader buffer without limit.
const maxLineLength = 4096

// Reader decodes YUV4MPEG2 streams into raw video frames.
type Reader struct {
	r      *bufio.Reader
	header Header
	frames int64
}

// NewReader consumes the stream header from r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	line, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	header, err := ParseHeader(line)
	if err != nil {
		return nil, err
	}
	return &Reader{r: br, header: header}, nil
}

func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return "", io.ErrUnexpectedEOF
			}
			return "", err
		}
		if b == '\n' {
			return sb.String(), nil
		}
		if sb.Len() >= maxLineLength {
			return "", fmt.Errorf("line longer than %d bytes", maxLineLength)
		}
		sb.WriteByte(b)
	}
}

func (r *Reader) Header() Header {
	return r.header
}

// ReadFrame decodes the next frame into memory from alloc, or the default
// allocator when alloc is nil. It returns io.EOF at the end of the stream.
// The frame is tagged with the stream colour metadata and its Pts is the
// frame index.
func (r *Reader) ReadFrame(alloc picture.Allocator) (*picture.RawFrame, error) {
	line, err := readLine(r.r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	if line != frameMagic && !strings.HasPrefix(line, frameMagic+" ") {
		return nil, fmt.Errorf("%w: expected %s marker, got %q", ErrInvalidFrame, frameMagic, line)
	}

	frame, err := picture.AllocVideoFrame(r.header.Size(), r.header.PixelFormat, alloc)
	if err != nil {
		return nil, err
	}

	video := frame.Video()
	video.ColorSpace = r.header.ColorSpace
	video.ColorRange = r.header.ColorRange
	frame.Pts = r.frames

	desc, _ := r.header.PixelFormat.Descriptor()
	for p := 0; p < desc.Planes; p++ {
		width := desc.PlaneWidth(p, int(r.header.Width))
		rows := desc.PlaneHeight(p, int(r.header.Height))
		for y := 0; y < rows; y++ {
			row := video.Planes[p][y*video.Linesize[p] : y*video.Linesize[p]+width]
			if _, err := io.ReadFull(r.r, row); err != nil {
				frame.Free()
				log.Errorf("Truncated y4m frame %d: %v", r.frames, err)
				return nil, fmt.Errorf("%w: frame %d truncated: %v", ErrInvalidFrame, r.frames, err)
			}
		}
	}

	r.frames++
	return frame, nil
}
