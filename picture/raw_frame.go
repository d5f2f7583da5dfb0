package picture

import (
	"github.com/kpfaulkner/videoframe-go/colour"
)

type MediaType int32

const (
	MEDIA_TYPE_UNKNOWN MediaType = -1
	MEDIA_TYPE_VIDEO   MediaType = 0
	MEDIA_TYPE_AUDIO   MediaType = 1
)

func (mt MediaType) String() string {
	switch mt {
	case MEDIA_TYPE_VIDEO:
		return "video"
	case MEDIA_TYPE_AUDIO:
		return "audio"
	}
	return "unknown"
}

// SampleFormat values match AVSampleFormat.
type SampleFormat int32

const (
	SAMPLE_FMT_NONE SampleFormat = -1
	SAMPLE_FMT_U8   SampleFormat = 0
	SAMPLE_FMT_S16  SampleFormat = 1
	SAMPLE_FMT_S32  SampleFormat = 2
	SAMPLE_FMT_FLT  SampleFormat = 3
	SAMPLE_FMT_FLTP SampleFormat = 8
)

// FrameData is the payload of a RawFrame. It is implemented only by
// *VideoData and *AudioData.
type FrameData interface {
	MediaType() MediaType
	isFrameData()
}

// VideoData is the image payload of a decoded frame.
type VideoData struct {
	Width       int32
	Height      int32
	PixelFormat PixelFormat
	ColorSpace  colour.ColorSpace
	ColorRange  colour.ColorRange
	Planes      [MaxPlanes][]byte
	Linesize    [MaxPlanes]int
}

func (*VideoData) MediaType() MediaType { return MEDIA_TYPE_VIDEO }
func (*VideoData) isFrameData()         {}

// AudioData is the sample payload of a decoded frame.
type AudioData struct {
	SampleFormat SampleFormat
	SampleRate   int32
	Channels     int32
	NumSamples   int32
	Planes       [][]byte
}

func (*AudioData) MediaType() MediaType { return MEDIA_TYPE_AUDIO }
func (*AudioData) isFrameData()         {}

// RawFrame is a frame handle as produced by a decoder. When the frame was
// allocated through an Allocator it owns its backing buffer and must be
// freed exactly once, normally by the picture Buffer that adopted it.
type RawFrame struct {
	Data FrameData
	Pts  int64

	buf   []byte
	alloc Allocator
	freed bool
}

// NewRawFrame wraps caller managed payload memory; Free does not release it.
func NewRawFrame(data FrameData) *RawFrame {
	return &RawFrame{Data: data}
}

func (f *RawFrame) MediaType() MediaType {
	if f == nil || f.Data == nil {
		return MEDIA_TYPE_UNKNOWN
	}
	return f.Data.MediaType()
}

// Video returns the image payload, or nil when the frame is not video.
func (f *RawFrame) Video() *VideoData {
	if f == nil {
		return nil
	}
	if v, ok := f.Data.(*VideoData); ok {
		return v
	}
	return nil
}

// Free releases the owned backing buffer. Calling Free more than once is a no-op.
func (f *RawFrame) Free() {
	if f == nil || f.freed {
		return
	}
	f.freed = true
	if f.alloc != nil && f.buf != nil {
		f.alloc.Free(f.buf)
	}
	f.buf = nil
	f.Data = nil
}

func (f *RawFrame) IsFreed() bool {
	return f == nil || f.freed
}
