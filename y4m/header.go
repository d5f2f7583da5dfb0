package y4m

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/picture"
)

const (
	streamMagic = "YUV4MPEG2"
	frameMagic  = "FRAME"
)

var (
	ErrInvalidHeader     = errors.New("invalid y4m header")
	ErrInvalidFrame      = errors.New("invalid y4m frame")
	ErrUnsupportedFormat = errors.New("unsupported y4m pixel format")
)

var chromaTags = map[string]picture.PixelFormat{
	"420jpeg":  picture.PIX_FMT_YUV420P,
	"420paldv": picture.PIX_FMT_YUV420P,
	"420mpeg2": picture.PIX_FMT_YUV420P,
	"420":      picture.PIX_FMT_YUV420P,
	"422":      picture.PIX_FMT_YUV422P,
	"444":      picture.PIX_FMT_YUV444P,
	"mono":     picture.PIX_FMT_GRAY8,
}

var colourSpaceTags = map[string]colour.ColorSpace{
	"BT709":  colour.CS_BT709,
	"BT601":  colour.CS_SMPTE170M,
	"BT2020": colour.CS_BT2020_NCL,
}

// Header is the stream header. Frames all share its geometry and format.
type Header struct {
	Width        int32
	Height       int32
	FrameRateNum int
	FrameRateDen int
	Interlacing  byte
	AspectNum    int
	AspectDen    int
	PixelFormat  picture.PixelFormat
	ColorSpace   colour.ColorSpace
	ColorRange   colour.ColorRange

	// Extensions holds X tags that are not interpreted, without the X.
	Extensions []string
}

func (h Header) Size() picture.Size {
	return picture.Size{Width: h.Width, Height: h.Height}
}

func parseRatio(s string) (int, int, error) {
	num, den, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: bad ratio %q", ErrInvalidHeader, s)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad ratio %q", ErrInvalidHeader, s)
	}
	d, err := strconv.Atoi(den)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad ratio %q", ErrInvalidHeader, s)
	}
	return n, d, nil
}

func parseDimension(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: bad dimension %q", ErrInvalidHeader, s)
	}
	return int32(v), nil
}

// ParseHeader parses a header line without its trailing newline.
func ParseHeader(line string) (Header, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != streamMagic {
		return Header{}, fmt.Errorf("%w: missing %s signature", ErrInvalidHeader, streamMagic)
	}

	h := Header{
		FrameRateNum: 25,
		FrameRateDen: 1,
		Interlacing:  '?',
		PixelFormat:  picture.PIX_FMT_YUV420P,
		ColorSpace:   colour.CS_UNSPECIFIED,
		ColorRange:   colour.CR_UNSPECIFIED,
	}

	var err error
	for _, field := range fields[1:] {
		tag, value := field[0], field[1:]
		switch tag {
		case 'W':
			h.Width, err = parseDimension(value)
		case 'H':
			h.Height, err = parseDimension(value)
		case 'F':
			h.FrameRateNum, h.FrameRateDen, err = parseRatio(value)
		case 'A':
			h.AspectNum, h.AspectDen, err = parseRatio(value)
		case 'I':
			if len(value) != 1 {
				err = fmt.Errorf("%w: bad interlacing %q", ErrInvalidHeader, value)
				break
			}
			h.Interlacing = value[0]
		case 'C':
			pf, ok := chromaTags[value]
			if !ok {
				err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
				break
			}
			h.PixelFormat = pf
		case 'X':
			h.parseExtension(value)
		}
		if err != nil {
			return Header{}, err
		}
	}

	if h.Width == 0 || h.Height == 0 {
		return Header{}, fmt.Errorf("%w: missing dimensions", ErrInvalidHeader)
	}
	if err := picture.CheckSize(h.Width, h.Height); err != nil {
		return Header{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	return h, nil
}

func (h *Header) parseExtension(value string) {
	key, v, _ := strings.Cut(value, "=")
	switch key {
	case "COLORRANGE":
		switch v {
		case "FULL":
			h.ColorRange = colour.CR_JPEG
			return
		case "LIMITED":
			h.ColorRange = colour.CR_MPEG
			return
		}
	case "COLORSPACE":
		if cs, ok := colourSpaceTags[v]; ok {
			h.ColorSpace = cs
			return
		}
	}
	h.Extensions = append(h.Extensions, value)
}

func chromaTag(pf picture.PixelFormat) (string, bool) {
	switch pf {
	case picture.PIX_FMT_YUV420P:
		return "420jpeg", true
	case picture.PIX_FMT_YUV422P:
		return "422", true
	case picture.PIX_FMT_YUV444P:
		return "444", true
	case picture.PIX_FMT_GRAY8:
		return "mono", true
	}
	return "", false
}

func colourSpaceTag(cs colour.ColorSpace) (string, bool) {
	switch colour.ResolveCoefficients(cs) {
	case colour.SET_ITU709:
		return "BT709", true
	case colour.SET_BT2020:
		return "BT2020", true
	}
	if cs == colour.CS_BT470BG || cs == colour.CS_SMPTE170M {
		return "BT601", true
	}
	return "", false
}

// String formats the header line, without the trailing newline.
func (h Header) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s W%d H%d F%d:%d", streamMagic, h.Width, h.Height, h.FrameRateNum, h.FrameRateDen)
	if h.Interlacing != 0 {
		fmt.Fprintf(&sb, " I%c", h.Interlacing)
	}
	if h.AspectDen != 0 {
		fmt.Fprintf(&sb, " A%d:%d", h.AspectNum, h.AspectDen)
	}
	if tag, ok := chromaTag(h.PixelFormat); ok {
		fmt.Fprintf(&sb, " C%s", tag)
	}
	switch h.ColorRange {
	case colour.CR_JPEG:
		sb.WriteString(" XCOLORRANGE=FULL")
	case colour.CR_MPEG:
		sb.WriteString(" XCOLORRANGE=LIMITED")
	}
	if tag, ok := colourSpaceTag(h.ColorSpace); ok {
		fmt.Fprintf(&sb, " XCOLORSPACE=%s", tag)
	}
	for _, ext := range h.Extensions {
		fmt.Fprintf(&sb, " X%s", ext)
	}
	return sb.String()
}
