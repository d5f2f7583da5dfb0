package videoframe

import (
	"image"
	color2 "image/color"
	"io"

	"github.com/kpfaulkner/videoframe-go/convert"
	"github.com/kpfaulkner/videoframe-go/imagedata"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/y4m"
)

const y4mHeader = "YUV4MPEG2 "

func init() {
	image.RegisterFormat("y4m", y4mHeader, Decode, DecodeConfig)
}

func bitmapFormatFor(pf picture.PixelFormat) imagedata.ImagePixelFormat {
	if pf == picture.PIX_FMT_GRAY8 {
		return imagedata.GRAY8
	}
	return imagedata.RGBA32
}

// Decode returns the first frame of a YUV4MPEG2 stream, converted using
// the colour tags of the stream.
func Decode(r io.Reader) (image.Image, error) {

	reader, err := y4m.NewReader(r)
	if err != nil {
		return nil, err
	}

	frame, err := reader.ReadFrame(nil)
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	pb, err := picture.FromExisting(frame)
	if err != nil {
		frame.Free()
		return nil, err
	}
	defer pb.Release()

	conv := convert.NewImageConverter(picture.Size{}, bitmapFormatFor(pb.PixelFormat()), nil)
	defer conv.Close()

	bitmap, err := conv.ToBitmap(pb, bitmapFormatFor(pb.PixelFormat()), picture.Size{})
	if err != nil {
		return nil, err
	}
	defer bitmap.Dispose()

	return bitmap.ToImage(), nil
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	reader, err := y4m.NewReader(r)
	if err != nil {
		return image.Config{}, err
	}
	header := reader.Header()

	var colourModel color2.Model
	switch header.PixelFormat {
	case picture.PIX_FMT_GRAY8:
		colourModel = color2.GrayModel
	default:
		colourModel = color2.NRGBAModel
	}

	return image.Config{
		ColorModel: colourModel,
		Width:      int(header.Width),
		Height:     int(header.Height),
	}, nil
}
