package colour

import "fmt"

const (
	FixedPointZero int32 = 0
	FixedPointOne  int32 = 1 << 16
)

// ColorSpaceDetails is the full set of parameters a conversion context needs
// to map between two colour representations. The struct is comparable so two
// results can be checked for bit-identical equality with ==.
type ColorSpaceDetails struct {
	SourceCoefficients      Coefficients
	SourceRange             RangeFlag
	DestinationCoefficients Coefficients
	DestinationRange        RangeFlag

	// 16.16 fixed point tone adjustments.
	Brightness int32
	Contrast   int32
	Saturation int32
}

// NewNeutralDetails returns details with no tone adjustment applied.
func NewNeutralDetails(src Coefficients, srcRange RangeFlag, dst Coefficients, dstRange RangeFlag) ColorSpaceDetails {
	return ColorSpaceDetails{
		SourceCoefficients:      src,
		SourceRange:             srcRange,
		DestinationCoefficients: dst,
		DestinationRange:        dstRange,
		Brightness:              FixedPointZero,
		Contrast:                FixedPointOne,
		Saturation:              FixedPointOne,
	}
}

// DefaultDetails is what an unconfigured context uses: default matrices on
// both sides, limited range source and full range destination.
func DefaultDetails() ColorSpaceDetails {
	def := CoefficientsFor(SET_DEFAULT)
	return NewNeutralDetails(def, RANGE_LIMITED, def, RANGE_FULL)
}

func (d ColorSpaceDetails) String() string {
	return fmt.Sprintf("src=%v/%v dst=%v/%v b=%d c=%d s=%d",
		d.SourceCoefficients, d.SourceRange, d.DestinationCoefficients, d.DestinationRange,
		d.Brightness, d.Contrast, d.Saturation)
}
