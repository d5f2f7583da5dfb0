package picture

import (
	"github.com/kpfaulkner/videoframe-go/colour"
)

// ColorSpaceConfigurer is the part of a conversion context that receives
// colour parameters.
type ColorSpaceConfigurer interface {
	SetColorspaceDetails(details colour.ColorSpaceDetails) error
}

func resolvedCoefficients(cs colour.ColorSpace) colour.Coefficients {
	set := colour.SET_DEFAULT
	if cs != colour.CS_UNSPECIFIED {
		set = colour.ResolveCoefficients(cs)
	}
	return colour.CoefficientsFor(set)
}

// BuildSourceParameters derives the parameters for converting b into a
// display bitmap. The destination is always full range with the default
// matrix; only the source side follows the frame metadata.
func BuildSourceParameters(b *Buffer) colour.ColorSpaceDetails {
	return colour.NewNeutralDetails(
		resolvedCoefficients(b.ColorSpace()),
		colour.RangeFlagFor(b.ColorRange()),
		colour.CoefficientsFor(colour.SET_DEFAULT),
		colour.RANGE_FULL)
}

// BuildDestinationParameters derives the parameters for filling b from a
// full range RGB bitmap.
func BuildDestinationParameters(b *Buffer) colour.ColorSpaceDetails {
	return colour.NewNeutralDetails(
		colour.CoefficientsFor(colour.SET_DEFAULT),
		colour.RANGE_FULL,
		resolvedCoefficients(b.ColorSpace()),
		colour.RangeFlagFor(b.ColorRange()))
}

// SetContextColorSpace programs ctx with the source parameters of b.
func (b *Buffer) SetContextColorSpace(ctx ColorSpaceConfigurer) error {
	if b.released {
		return ErrReleased
	}
	return ctx.SetColorspaceDetails(BuildSourceParameters(b))
}
