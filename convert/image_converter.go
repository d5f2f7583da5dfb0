package convert

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/imagedata"
	"github.com/kpfaulkner/videoframe-go/options"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/scale"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEmptyPicture      = errors.New("picture has no pixel data")
	ErrUnsupportedBitmap = errors.New("unsupported bitmap format")
)

// ImageConverter converts pictures to bitmaps and back. It keeps one
// conversion context per direction and reuses it while formats and sizes
// stay the same. Not safe for concurrent use.
type ImageConverter struct {
	destinationSize   picture.Size
	destinationFormat imagedata.ImagePixelFormat
	options           *options.ConverterOptions

	decodeCtx *scale.Context
	encodeCtx *scale.Context
}

// NewImageConverter creates a converter producing bitmaps of size and
// format. A zero size keeps the size of each converted picture.
func NewImageConverter(size picture.Size, format imagedata.ImagePixelFormat, opts *options.ConverterOptions) *ImageConverter {
	return &ImageConverter{
		destinationSize:   size,
		destinationFormat: format,
		options:           options.NewConverterOptions(opts),
	}
}

func (c *ImageConverter) flags() scale.Flags {
	switch c.options.Interpolation {
	case options.INTERPOLATION_BILINEAR:
		return scale.SWS_BILINEAR
	case options.INTERPOLATION_FAST_BILINEAR:
		return scale.SWS_FAST_BILINEAR
	case options.INTERPOLATION_NEAREST:
		return scale.SWS_POINT
	case options.INTERPOLATION_AREA:
		return scale.SWS_AREA
	}
	return scale.SWS_BICUBIC
}

func checkPicture(pb *picture.Buffer) error {
	if pb.IsReleased() {
		return picture.ErrReleased
	}
	layout := pb.Layout()
	if pb.PixelFormat() == picture.PIX_FMT_NONE || layout.Width <= 0 || layout.Height <= 0 {
		return ErrEmptyPicture
	}
	return nil
}

func resolveSize(target picture.Size, fallback picture.Size) picture.Size {
	if target.Width <= 0 || target.Height <= 0 {
		return fallback
	}
	return target
}

func pictureFormat(pb *picture.Buffer) scale.Format {
	layout := pb.Layout()
	return scale.Format{Width: int(layout.Width), Height: int(layout.Height), PixelFormat: pb.PixelFormat()}
}

func bitmapFormat(size picture.Size, format imagedata.ImagePixelFormat) (scale.Format, error) {
	pf := format.ToPixelFormat()
	if pf == picture.PIX_FMT_NONE {
		return scale.Format{}, fmt.Errorf("%w: %d", ErrUnsupportedBitmap, format)
	}
	return scale.Format{Width: int(size.Width), Height: int(size.Height), PixelFormat: pf}, nil
}

// ToBitmap converts pb into a pooled bitmap of targetFormat and targetSize.
// The caller disposes the result.
func (c *ImageConverter) ToBitmap(pb *picture.Buffer, targetFormat imagedata.ImagePixelFormat, targetSize picture.Size) (*imagedata.ImageData, error) {
	if err := checkPicture(pb); err != nil {
		return nil, err
	}
	if targetFormat.ToPixelFormat() == picture.PIX_FMT_NONE {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitmap, targetFormat)
	}

	bitmap := imagedata.CreatePooled(resolveSize(targetSize, pb.Layout()), targetFormat)
	if err := c.frameToBitmap(pb, bitmap); err != nil {
		bitmap.Dispose()
		return nil, err
	}
	return bitmap, nil
}

// FrameToBitmap converts pb into caller memory laid out with the
// converter's destination format and size.
func (c *ImageConverter) FrameToBitmap(pb *picture.Buffer, dst []byte, stride int) error {
	if err := checkPicture(pb); err != nil {
		return err
	}
	bitmap := &imagedata.ImageData{
		Data:        dst,
		Stride:      stride,
		Size:        resolveSize(c.destinationSize, pb.Layout()),
		PixelFormat: c.destinationFormat,
	}
	return c.frameToBitmap(pb, bitmap)
}

func (c *ImageConverter) frameToBitmap(pb *picture.Buffer, bitmap *imagedata.ImageData) error {
	dst, err := bitmapFormat(bitmap.Size, bitmap.PixelFormat)
	if err != nil {
		return err
	}

	ctx, err := scale.GetCachedContext(c.decodeCtx, pictureFormat(pb), dst, c.flags())
	if err != nil {
		log.Errorf("Cannot create conversion context for %v: %v", pb, err)
		return err
	}
	c.decodeCtx = ctx

	if err := pb.SetContextColorSpace(ctx); err != nil {
		return err
	}
	if c.options.Debug {
		log.Debugf("Converting %v with %v", pb, ctx.ColorspaceDetails())
	}
	return ctx.Scale(scale.PlanesOf(pb), scale.PackedPlanes(bitmap.Data, bitmap.Stride))
}

// UpdateFromBitmap overwrites the pixels of pb with bitmap, resampling when
// the sizes differ. The colour tags of pb select the output matrix and range.
func (c *ImageConverter) UpdateFromBitmap(bitmap *imagedata.ImageData, pb *picture.Buffer) error {
	if err := checkPicture(pb); err != nil {
		return err
	}
	src, err := bitmapFormat(bitmap.Size, bitmap.PixelFormat)
	if err != nil {
		return err
	}

	ctx, err := scale.GetCachedContext(c.encodeCtx, src, pictureFormat(pb), c.flags())
	if err != nil {
		log.Errorf("Cannot create conversion context for %v: %v", pb, err)
		return err
	}
	c.encodeCtx = ctx

	if err := ctx.SetColorspaceDetails(picture.BuildDestinationParameters(pb)); err != nil {
		return err
	}
	return ctx.Scale(scale.PackedPlanes(bitmap.Data, bitmap.Stride), scale.PlanesOf(pb))
}

// FillFrame allocates a picture of pf tagged with cs and cr and fills it
// from bitmap. The picture takes the converter's destination size, or the
// bitmap size when that is zero.
func (c *ImageConverter) FillFrame(bitmap *imagedata.ImageData, pf picture.PixelFormat, cs colour.ColorSpace, cr colour.ColorRange) (*picture.Buffer, error) {
	pb, err := picture.Create(resolveSize(c.destinationSize, bitmap.Size), pf)
	if err != nil {
		return nil, err
	}
	pb.SetColorSpace(cs)
	pb.SetColorRange(cr)

	if err := c.UpdateFromBitmap(bitmap, pb); err != nil {
		pb.Release()
		return nil, err
	}
	return pb, nil
}

// Close drops the cached contexts.
func (c *ImageConverter) Close() {
	c.decodeCtx = nil
	c.encodeCtx = nil
}
