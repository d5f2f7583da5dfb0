package options

// Interpolation selects the resampling kernel used when the bitmap size
// differs from the frame size.
type Interpolation int

const (
	INTERPOLATION_BICUBIC Interpolation = iota
	INTERPOLATION_BILINEAR
	INTERPOLATION_FAST_BILINEAR
	INTERPOLATION_NEAREST
	INTERPOLATION_AREA
)

func (i Interpolation) String() string {
	switch i {
	case INTERPOLATION_BICUBIC:
		return "bicubic"
	case INTERPOLATION_BILINEAR:
		return "bilinear"
	case INTERPOLATION_FAST_BILINEAR:
		return "fast-bilinear"
	case INTERPOLATION_NEAREST:
		return "nearest"
	case INTERPOLATION_AREA:
		return "area"
	}
	return "unknown"
}

// ParseInterpolation accepts the names returned by String.
func ParseInterpolation(name string) (Interpolation, bool) {
	for i := INTERPOLATION_BICUBIC; i <= INTERPOLATION_AREA; i++ {
		if i.String() == name {
			return i, true
		}
	}
	return INTERPOLATION_BICUBIC, false
}

type ConverterOptions struct {
	Debug         bool
	Interpolation Interpolation
}

func NewConverterOptions(options *ConverterOptions) *ConverterOptions {

	opt := &ConverterOptions{}
	if options != nil {
		opt.Debug = options.Debug
		opt.Interpolation = options.Interpolation
	}
	if opt.Interpolation < INTERPOLATION_BICUBIC || opt.Interpolation > INTERPOLATION_AREA {
		opt.Interpolation = INTERPOLATION_BICUBIC
	}
	return opt
}
