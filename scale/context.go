package scale

import (
	"errors"
	"fmt"
	"image"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// Flags select the resampling kernel, using the SWS_* values.
type Flags int

const (
	SWS_FAST_BILINEAR Flags = 0x1
	SWS_BILINEAR      Flags = 0x2
	SWS_BICUBIC       Flags = 0x4
	SWS_POINT         Flags = 0x10
	SWS_AREA          Flags = 0x20
)

var ErrUnsupportedFormat = errors.New("unsupported conversion format")

// Format is one side of a conversion.
type Format struct {
	Width       int
	Height      int
	PixelFormat picture.PixelFormat
}

func (f Format) String() string {
	return fmt.Sprintf("%dx%d %v", f.Width, f.Height, f.PixelFormat)
}

// Planes points at the pixel memory of one side of a conversion.
type Planes struct {
	Data     [picture.MaxPlanes][]byte
	Linesize [picture.MaxPlanes]int
}

// PlanesOf returns a view of the planes of a picture buffer.
func PlanesOf(b *picture.Buffer) Planes {
	var p Planes
	for i := 0; i < picture.MaxPlanes; i++ {
		p.Data[i] = b.Plane(i)
		p.Linesize[i] = b.Linesize(i)
	}
	return p
}

// PackedPlanes wraps a single packed buffer such as a bitmap.
func PackedPlanes(data []byte, stride int) Planes {
	var p Planes
	p.Data[0] = data
	p.Linesize[0] = stride
	return p
}

// GetCoefficients is the backend coefficient lookup.
func GetCoefficients(id colour.CoefficientSet) colour.Coefficients {
	return colour.CoefficientsFor(id)
}

// Context converts pictures of one source format into one destination
// format. It is reusable across frames but not safe for concurrent use.
type Context struct {
	src   Format
	dst   Format
	flags Flags

	srcDesc picture.PixelFormatDescriptor
	dstDesc picture.PixelFormatDescriptor

	details colour.ColorSpaceDetails
	tables  yuvTables

	pool *util.BytePool
}

// NewContext creates a context with default colour details.
func NewContext(src Format, dst Format, flags Flags) (*Context, error) {
	srcDesc, ok := src.PixelFormat.Descriptor()
	if !ok {
		return nil, fmt.Errorf("%w: source %v", ErrUnsupportedFormat, src.PixelFormat)
	}
	dstDesc, ok := dst.PixelFormat.Descriptor()
	if !ok {
		return nil, fmt.Errorf("%w: destination %v", ErrUnsupportedFormat, dst.PixelFormat)
	}
	if src.Width <= 0 || src.Height <= 0 || dst.Width <= 0 || dst.Height <= 0 {
		return nil, fmt.Errorf("invalid conversion size %v -> %v", src, dst)
	}

	c := &Context{
		src:     src,
		dst:     dst,
		flags:   flags,
		srcDesc: srcDesc,
		dstDesc: dstDesc,
		pool:    util.DefaultBytePool(),
	}
	if err := c.SetColorspaceDetails(colour.DefaultDetails()); err != nil {
		return nil, err
	}

	log.Debugf("Created conversion context %v -> %v flags %#x", src, dst, flags)
	return c, nil
}

// GetCachedContext returns prev when it already converts src to dst with the
// same flags, otherwise a new context.
func GetCachedContext(prev *Context, src Format, dst Format, flags Flags) (*Context, error) {
	if prev != nil && prev.src == src && prev.dst == dst && prev.flags == flags {
		return prev, nil
	}
	return NewContext(src, dst, flags)
}

func (c *Context) Source() Format {
	return c.src
}

func (c *Context) Destination() Format {
	return c.dst
}

// SetColorspaceDetails programs the matrices, ranges and tone adjustments.
func (c *Context) SetColorspaceDetails(d colour.ColorSpaceDetails) error {
	if d.Contrast < 0 || d.Saturation < 0 {
		return fmt.Errorf("invalid tone adjustment contrast=%d saturation=%d", d.Contrast, d.Saturation)
	}
	c.details = d
	c.tables = newYUVTables(d)
	return nil
}

func (c *Context) ColorspaceDetails() colour.ColorSpaceDetails {
	return c.details
}

// areaKernel is a box filter. When downscaling its support widens to cover
// each destination pixel, so every output is the mean of the source area.
var areaKernel = &draw.Kernel{Support: 0.5, At: func(t float64) float64 { return 1 }}

func (c *Context) interpolator() draw.Interpolator {
	switch {
	case c.flags&SWS_POINT != 0:
		return draw.NearestNeighbor
	case c.flags&SWS_FAST_BILINEAR != 0:
		return draw.ApproxBiLinear
	case c.flags&SWS_BICUBIC != 0:
		return draw.CatmullRom
	case c.flags&SWS_AREA != 0:
		return areaKernel
	default:
		return draw.BiLinear
	}
}

// Scale converts src into dst, resampling when the sizes differ.
func (c *Context) Scale(src Planes, dst Planes) error {
	if err := checkPlanes(c.src, c.srcDesc, src); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := checkPlanes(c.dst, c.dstDesc, dst); err != nil {
		return fmt.Errorf("destination: %w", err)
	}

	work := c.newWorkImage(c.src.Width, c.src.Height)
	defer c.pool.Put(work.Pix)
	c.unpack(src, work)

	if c.src.Width != c.dst.Width || c.src.Height != c.dst.Height {
		scaled := c.newWorkImage(c.dst.Width, c.dst.Height)
		defer c.pool.Put(scaled.Pix)
		c.interpolator().Scale(scaled, scaled.Bounds(), work, work.Bounds(), draw.Src, nil)
		work = scaled
	}

	c.pack(work, dst)
	return nil
}

func (c *Context) newWorkImage(width int, height int) *image.RGBA {
	return &image.RGBA{
		Pix:    c.pool.Get(width * height * 4),
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

func checkPlanes(f Format, d picture.PixelFormatDescriptor, p Planes) error {
	for i := 0; i < d.Planes; i++ {
		width := d.PlaneWidth(i, f.Width)
		rows := d.PlaneHeight(i, f.Height)
		if p.Linesize[i] < width {
			return fmt.Errorf("plane %d linesize %d smaller than row width %d", i, p.Linesize[i], width)
		}
		if len(p.Data[i]) < width || (rows > 1 && (len(p.Data[i])-width)/p.Linesize[i] < rows-1) {
			return fmt.Errorf("plane %d too small: got %d bytes for %d rows of linesize %d", i, len(p.Data[i]), rows, p.Linesize[i])
		}
	}
	return nil
}
