package picture

import (
	"fmt"

	"github.com/kpfaulkner/videoframe-go/util"
)

// PixelFormat identifies the memory layout of a picture. Values match
// AVPixelFormat in libavutil/pixfmt.h.
type PixelFormat int32

const (
	PIX_FMT_NONE    PixelFormat = -1
	PIX_FMT_YUV420P PixelFormat = 0
	PIX_FMT_RGB24   PixelFormat = 2
	PIX_FMT_BGR24   PixelFormat = 3
	PIX_FMT_YUV422P PixelFormat = 4
	PIX_FMT_YUV444P PixelFormat = 5
	PIX_FMT_GRAY8   PixelFormat = 8
	PIX_FMT_NV12    PixelFormat = 23
	PIX_FMT_NV21    PixelFormat = 24
	PIX_FMT_ARGB    PixelFormat = 25
	PIX_FMT_RGBA    PixelFormat = 26
	PIX_FMT_ABGR    PixelFormat = 27
	PIX_FMT_BGRA    PixelFormat = 28
)

// MaxPlanes is the largest plane count of any supported format.
const MaxPlanes = 4

type Family int

const (
	FAMILY_YUV Family = iota // planar Y, U, V
	FAMILY_NV                // planar Y, interleaved chroma
	FAMILY_GRAY
	FAMILY_RGB // packed
)

// PixelFormatDescriptor describes how a pixel format is laid out in memory.
type PixelFormatDescriptor struct {
	Name        string
	Family      Family
	Planes      int
	PixelStep   [MaxPlanes]int // bytes per horizontal sample, per plane
	Log2ChromaW int
	Log2ChromaH int

	// byte offset of R, G, B, A inside a packed pixel, -1 when absent.
	RGBAOffsets [4]int

	// NV21 stores V before U.
	ChromaSwapped bool
}

var descriptors = map[PixelFormat]PixelFormatDescriptor{
	PIX_FMT_YUV420P: {Name: "yuv420p", Family: FAMILY_YUV, Planes: 3, PixelStep: [MaxPlanes]int{1, 1, 1}, Log2ChromaW: 1, Log2ChromaH: 1},
	PIX_FMT_YUV422P: {Name: "yuv422p", Family: FAMILY_YUV, Planes: 3, PixelStep: [MaxPlanes]int{1, 1, 1}, Log2ChromaW: 1},
	PIX_FMT_YUV444P: {Name: "yuv444p", Family: FAMILY_YUV, Planes: 3, PixelStep: [MaxPlanes]int{1, 1, 1}},
	PIX_FMT_NV12:    {Name: "nv12", Family: FAMILY_NV, Planes: 2, PixelStep: [MaxPlanes]int{1, 2}, Log2ChromaW: 1, Log2ChromaH: 1},
	PIX_FMT_NV21:    {Name: "nv21", Family: FAMILY_NV, Planes: 2, PixelStep: [MaxPlanes]int{1, 2}, Log2ChromaW: 1, Log2ChromaH: 1, ChromaSwapped: true},
	PIX_FMT_GRAY8:   {Name: "gray", Family: FAMILY_GRAY, Planes: 1, PixelStep: [MaxPlanes]int{1}},
	PIX_FMT_RGB24:   {Name: "rgb24", Family: FAMILY_RGB, Planes: 1, PixelStep: [MaxPlanes]int{3}, RGBAOffsets: [4]int{0, 1, 2, -1}},
	PIX_FMT_BGR24:   {Name: "bgr24", Family: FAMILY_RGB, Planes: 1, PixelStep: [MaxPlanes]int{3}, RGBAOffsets: [4]int{2, 1, 0, -1}},
	PIX_FMT_ARGB:    {Name: "argb", Family: FAMILY_RGB, Planes: 1, PixelStep: [MaxPlanes]int{4}, RGBAOffsets: [4]int{1, 2, 3, 0}},
	PIX_FMT_RGBA:    {Name: "rgba", Family: FAMILY_RGB, Planes: 1, PixelStep: [MaxPlanes]int{4}, RGBAOffsets: [4]int{0, 1, 2, 3}},
	PIX_FMT_ABGR:    {Name: "abgr", Family: FAMILY_RGB, Planes: 1, PixelStep: [MaxPlanes]int{4}, RGBAOffsets: [4]int{3, 2, 1, 0}},
	PIX_FMT_BGRA:    {Name: "bgra", Family: FAMILY_RGB, Planes: 1, PixelStep: [MaxPlanes]int{4}, RGBAOffsets: [4]int{2, 1, 0, 3}},
}

// Descriptor returns the layout of a supported pixel format.
func (pf PixelFormat) Descriptor() (PixelFormatDescriptor, bool) {
	d, ok := descriptors[pf]
	return d, ok
}

func (pf PixelFormat) IsValid() bool {
	_, ok := descriptors[pf]
	return ok
}

// IsYUV reports whether samples are stored as luma/chroma and need a matrix
// to become RGB.
func (pf PixelFormat) IsYUV() bool {
	d, ok := descriptors[pf]
	return ok && (d.Family == FAMILY_YUV || d.Family == FAMILY_NV)
}

func (pf PixelFormat) IsRGB() bool {
	d, ok := descriptors[pf]
	return ok && d.Family == FAMILY_RGB
}

func (pf PixelFormat) HasAlpha() bool {
	d, ok := descriptors[pf]
	return ok && d.RGBAOffsets[3] >= 0 && d.Family == FAMILY_RGB
}

func (pf PixelFormat) String() string {
	if pf == PIX_FMT_NONE {
		return "none"
	}
	if d, ok := descriptors[pf]; ok {
		return d.Name
	}
	return fmt.Sprintf("pixfmt(%d)", int32(pf))
}

// PlaneWidth is the number of meaningful bytes in one row of a plane.
func (d PixelFormatDescriptor) PlaneWidth(plane int, width int) int {
	if plane >= d.Planes {
		return 0
	}
	if plane == 0 || d.Family == FAMILY_RGB || d.Family == FAMILY_GRAY {
		return width * d.PixelStep[plane]
	}
	return util.CeilShift(width, d.Log2ChromaW) * d.PixelStep[plane]
}

// PlaneHeight is the number of rows in a plane.
func (d PixelFormatDescriptor) PlaneHeight(plane int, height int) int {
	if plane >= d.Planes {
		return 0
	}
	if plane == 0 {
		return height
	}
	return util.CeilShift(height, d.Log2ChromaH)
}
