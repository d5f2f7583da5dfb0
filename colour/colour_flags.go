package colour

import "fmt"

// ColorSpace is the matrix-coefficients tag carried by a decoded frame.
// Values match AVColorSpace in libavutil/pixfmt.h.
type ColorSpace int32

// ColorRange is the luma/chroma range tag carried by a decoded frame.
// Values match AVColorRange in libavutil/pixfmt.h.
type ColorRange int32

const (
	CS_RGB                ColorSpace = 0
	CS_BT709              ColorSpace = 1
	CS_UNSPECIFIED        ColorSpace = 2
	CS_RESERVED           ColorSpace = 3
	CS_FCC                ColorSpace = 4
	CS_BT470BG            ColorSpace = 5
	CS_SMPTE170M          ColorSpace = 6
	CS_SMPTE240M          ColorSpace = 7
	CS_YCGCO              ColorSpace = 8
	CS_BT2020_NCL         ColorSpace = 9
	CS_BT2020_CL          ColorSpace = 10
	CS_SMPTE2085          ColorSpace = 11
	CS_CHROMA_DERIVED_NCL ColorSpace = 12
	CS_CHROMA_DERIVED_CL  ColorSpace = 13
	CS_ICTCP              ColorSpace = 14

	CR_UNSPECIFIED ColorRange = 0
	CR_MPEG        ColorRange = 1 // limited, 16-235
	CR_JPEG        ColorRange = 2 // full, 0-255
)

var colorSpaceNames = map[ColorSpace]string{
	CS_RGB:                "gbr",
	CS_BT709:              "bt709",
	CS_UNSPECIFIED:        "unknown",
	CS_RESERVED:           "reserved",
	CS_FCC:                "fcc",
	CS_BT470BG:            "bt470bg",
	CS_SMPTE170M:          "smpte170m",
	CS_SMPTE240M:          "smpte240m",
	CS_YCGCO:              "ycgco",
	CS_BT2020_NCL:         "bt2020nc",
	CS_BT2020_CL:          "bt2020c",
	CS_SMPTE2085:          "smpte2085",
	CS_CHROMA_DERIVED_NCL: "chroma-derived-nc",
	CS_CHROMA_DERIVED_CL:  "chroma-derived-c",
	CS_ICTCP:              "ictcp",
}

func (cs ColorSpace) String() string {
	if name, ok := colorSpaceNames[cs]; ok {
		return name
	}
	return fmt.Sprintf("colorspace(%d)", int32(cs))
}

func (cr ColorRange) String() string {
	switch cr {
	case CR_UNSPECIFIED:
		return "unknown"
	case CR_MPEG:
		return "tv"
	case CR_JPEG:
		return "pc"
	}
	return fmt.Sprintf("range(%d)", int32(cr))
}

func ValidateColorSpace(cs ColorSpace) bool {
	_, ok := colorSpaceNames[cs]
	return ok
}

func ValidateColorRange(cr ColorRange) bool {
	return cr >= CR_UNSPECIFIED && cr <= CR_JPEG
}
