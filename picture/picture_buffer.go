package picture

import (
	"fmt"

	"github.com/kpfaulkner/videoframe-go/colour"
	log "github.com/sirupsen/logrus"
)

// Buffer owns a native picture: pixel planes plus geometry, pixel format and
// colour metadata. It exclusively owns the RawFrame it holds and frees it on
// Update or Release. A Buffer is not safe for concurrent use.
type Buffer struct {
	frame    *RawFrame
	released bool
}

// CreateEmpty returns a buffer with no pixel storage, ready to receive a
// decoded frame through Update.
func CreateEmpty() *Buffer {
	return &Buffer{
		frame: &RawFrame{
			Data: &VideoData{
				PixelFormat: PIX_FMT_NONE,
				ColorSpace:  colour.CS_UNSPECIFIED,
				ColorRange:  colour.CR_UNSPECIFIED,
			},
		},
	}
}

// Create allocates a buffer for dims at pf using the default allocator.
func Create(dims Size, pf PixelFormat) (*Buffer, error) {
	return CreateWithAllocator(dims, pf, nil)
}

func CreateWithAllocator(dims Size, pf PixelFormat, alloc Allocator) (*Buffer, error) {
	frame, err := AllocVideoFrame(dims, pf, alloc)
	if err != nil {
		return nil, err
	}
	return &Buffer{frame: frame}, nil
}

// FromExisting adopts an already allocated frame. Audio frames are rejected
// before any of their fields are read. A frame without payload is accepted
// as an empty picture.
func FromExisting(raw *RawFrame) (*Buffer, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil frame", ErrInvalidMediaType)
	}
	switch raw.Data.(type) {
	case *AudioData:
		log.Errorf("Cannot create a picture buffer from a frame containing audio")
		return nil, fmt.Errorf("%w: cannot create a picture from audio", ErrInvalidMediaType)
	case nil:
		raw.Data = &VideoData{
			PixelFormat: PIX_FMT_NONE,
			ColorSpace:  colour.CS_UNSPECIFIED,
			ColorRange:  colour.CR_UNSPECIFIED,
		}
	}
	return &Buffer{frame: raw}, nil
}

// Update swaps in newFrame, taking ownership of it and freeing the frame
// previously held. newFrame must carry video data.
func (b *Buffer) Update(newFrame *RawFrame) error {
	if b.released {
		return ErrReleased
	}
	if newFrame.MediaType() != MEDIA_TYPE_VIDEO {
		log.Errorf("Rejecting %v frame for picture update", newFrame.MediaType())
		return fmt.Errorf("%w: new frame is %v", ErrInvalidMediaType, newFrame.MediaType())
	}
	if newFrame == b.frame {
		return nil
	}

	old := b.frame
	b.frame = newFrame
	old.Free()
	return nil
}

// Release frees the owned frame. Further calls are no-ops.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.frame.Free()
	b.frame = nil
}

func (b *Buffer) IsReleased() bool {
	return b == nil || b.released
}

// Frame is a read view of the owned frame; ownership stays with b.
func (b *Buffer) Frame() *RawFrame {
	if b == nil {
		return nil
	}
	return b.frame
}

func (b *Buffer) video() *VideoData {
	if b == nil || b.released {
		return nil
	}
	return b.frame.Video()
}

// Layout returns the picture dimensions.
func (b *Buffer) Layout() Size {
	if v := b.video(); v != nil {
		return Size{Width: v.Width, Height: v.Height}
	}
	return Size{}
}

func (b *Buffer) PixelFormat() PixelFormat {
	if v := b.video(); v != nil {
		return v.PixelFormat
	}
	return PIX_FMT_NONE
}

func (b *Buffer) ColorSpace() colour.ColorSpace {
	if v := b.video(); v != nil {
		return v.ColorSpace
	}
	return colour.CS_UNSPECIFIED
}

func (b *Buffer) ColorRange() colour.ColorRange {
	if v := b.video(); v != nil {
		return v.ColorRange
	}
	return colour.CR_UNSPECIFIED
}

func (b *Buffer) SetColorSpace(cs colour.ColorSpace) {
	if v := b.video(); v != nil {
		v.ColorSpace = cs
	}
}

func (b *Buffer) SetColorRange(cr colour.ColorRange) {
	if v := b.video(); v != nil {
		v.ColorRange = cr
	}
}

// Plane returns the pixel rows of plane i, including linesize padding.
func (b *Buffer) Plane(i int) []byte {
	v := b.video()
	if v == nil || i < 0 || i >= MaxPlanes {
		return nil
	}
	return v.Planes[i]
}

func (b *Buffer) Linesize(i int) int {
	v := b.video()
	if v == nil || i < 0 || i >= MaxPlanes {
		return 0
	}
	return v.Linesize[i]
}

func (b *Buffer) Pts() int64 {
	if b == nil || b.released {
		return 0
	}
	return b.frame.Pts
}

func (b *Buffer) String() string {
	if b == nil {
		return "VideoFrame <nil>"
	}
	if b.released {
		return "VideoFrame released"
	}
	return fmt.Sprintf("VideoFrame %v %v %v/%v", b.Layout(), b.PixelFormat(), b.ColorSpace(), b.ColorRange())
}
