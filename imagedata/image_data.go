package imagedata

import (
	"errors"
	"fmt"
	"image"

	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/util"
	xdraw "golang.org/x/image/draw"
)

// ImagePixelFormat is the layout of a packed bitmap.
type ImagePixelFormat int

const (
	BGR24 ImagePixelFormat = iota
	BGRA32
	RGB24
	RGBA32
	ARGB32
	GRAY8
)

var ErrBufferTooSmall = errors.New("pixel buffer too small")

var pixelFormats = map[ImagePixelFormat]picture.PixelFormat{
	BGR24:  picture.PIX_FMT_BGR24,
	BGRA32: picture.PIX_FMT_BGRA,
	RGB24:  picture.PIX_FMT_RGB24,
	RGBA32: picture.PIX_FMT_RGBA,
	ARGB32: picture.PIX_FMT_ARGB,
	GRAY8:  picture.PIX_FMT_GRAY8,
}

// ToPixelFormat returns the picture format with the same memory layout.
func (f ImagePixelFormat) ToPixelFormat() picture.PixelFormat {
	if pf, ok := pixelFormats[f]; ok {
		return pf
	}
	return picture.PIX_FMT_NONE
}

func (f ImagePixelFormat) BytesPerPixel() int {
	switch f {
	case BGR24, RGB24:
		return 3
	case BGRA32, RGBA32, ARGB32:
		return 4
	case GRAY8:
		return 1
	}
	return 0
}

func (f ImagePixelFormat) String() string {
	return f.ToPixelFormat().String()
}

// ImageData is a packed bitmap. Rows are Stride bytes apart.
type ImageData struct {
	Data        []byte
	Stride      int
	Size        picture.Size
	PixelFormat ImagePixelFormat

	pool *util.BytePool
}

// EstimateStride rounds a row up to a multiple of four bytes.
func EstimateStride(width int32, f ImagePixelFormat) int {
	bits := f.BytesPerPixel() * 8 * int(width)
	return 4 * ((bits + 31) / 32)
}

// New allocates an unpooled bitmap.
func New(size picture.Size, f ImagePixelFormat) *ImageData {
	stride := EstimateStride(size.Width, f)
	return &ImageData{
		Data:        make([]byte, stride*int(size.Height)),
		Stride:      stride,
		Size:        size,
		PixelFormat: f,
	}
}

// CreatePooled takes the bitmap memory from the shared pool. Dispose returns it.
func CreatePooled(size picture.Size, f ImagePixelFormat) *ImageData {
	stride := EstimateStride(size.Width, f)
	pool := util.DefaultBytePool()
	return &ImageData{
		Data:        pool.Get(stride * int(size.Height)),
		Stride:      stride,
		Size:        size,
		PixelFormat: f,
		pool:        pool,
	}
}

// FromPixelArray wraps caller memory without copying.
func FromPixelArray(data []byte, f ImagePixelFormat, size picture.Size) (*ImageData, error) {
	stride := EstimateStride(size.Width, f)
	if need := stride * int(size.Height); len(data) < need {
		return nil, fmt.Errorf("%w: got %d, need %d for %v %v", ErrBufferTooSmall, len(data), need, size, f)
	}
	return &ImageData{
		Data:        data,
		Stride:      stride,
		Size:        size,
		PixelFormat: f,
	}, nil
}

// Dispose returns pooled memory. Further calls do nothing.
func (d *ImageData) Dispose() {
	if d.pool == nil {
		return
	}
	d.pool.Put(d.Data)
	d.pool = nil
	d.Data = nil
}

func (d *ImageData) IsPooled() bool {
	return d.pool != nil
}

// ToImage copies the bitmap into a Go image. GRAY8 gives *image.Gray,
// everything else *image.NRGBA.
func (d *ImageData) ToImage() image.Image {
	w, h := int(d.Size.Width), int(d.Size.Height)

	if d.PixelFormat == GRAY8 {
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+w], d.Data[y*d.Stride:])
		}
		return img
	}

	desc, _ := d.PixelFormat.ToPixelFormat().Descriptor()
	step := d.PixelFormat.BytesPerPixel()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := d.Data[y*d.Stride:]
		out := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			px := row[x*step:]
			out[x*4] = px[desc.RGBAOffsets[0]]
			out[x*4+1] = px[desc.RGBAOffsets[1]]
			out[x*4+2] = px[desc.RGBAOffsets[2]]
			out[x*4+3] = 255
			if desc.RGBAOffsets[3] >= 0 {
				out[x*4+3] = px[desc.RGBAOffsets[3]]
			}
		}
	}
	return img
}

// FromImage copies any Go image into an unpooled RGBA32 bitmap.
func FromImage(img image.Image) *ImageData {
	b := img.Bounds()
	size := picture.Size{Width: int32(b.Dx()), Height: int32(b.Dy())}
	d := New(size, RGBA32)

	dst := &image.NRGBA{Pix: d.Data, Stride: d.Stride, Rect: image.Rect(0, 0, b.Dx(), b.Dy())}
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return d
}
