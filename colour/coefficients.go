package colour

// CoefficientSet identifies one of the YUV->RGB matrices known to the
// conversion backend. Values match the SWS_CS_* constants of libswscale.
type CoefficientSet int32

const (
	SET_ITU709    CoefficientSet = 1
	SET_FCC       CoefficientSet = 4
	SET_ITU601    CoefficientSet = 5
	SET_ITU624    CoefficientSet = 5
	SET_SMPTE170M CoefficientSet = 5
	SET_SMPTE240M CoefficientSet = 7
	SET_BT2020    CoefficientSet = 9
	SET_DEFAULT   CoefficientSet = 5
)

// Coefficients holds the crv, cbu, cgu and cgv matrix constants in 16.16
// fixed point, scaled for limited range input.
type Coefficients [4]int32

// RangeFlag is the numeric range parameter handed to a conversion context.
type RangeFlag int32

const (
	RANGE_LIMITED RangeFlag = 0 // MPEG / TV
	RANGE_FULL    RangeFlag = 1 // JPEG / PC
)

func (r RangeFlag) String() string {
	if r == RANGE_FULL {
		return "full"
	}
	return "limited"
}

// indexed by CoefficientSet, mirrors ff_yuv2rgb_coeffs.
var coefficientTable = [11]Coefficients{
	{117489, 138438, 13975, 34925}, // no sequence_display_extension
	{117489, 138438, 13975, 34925}, // ITU-R Rec. 709 (1990)
	{104597, 132201, 25675, 53279}, // unspecified
	{104597, 132201, 25675, 53279}, // reserved
	{104448, 132798, 24759, 53109}, // FCC
	{104597, 132201, 25675, 53279}, // ITU-R Rec. 624-4 System B, G
	{104597, 132201, 25675, 53279}, // SMPTE 170M
	{117579, 136230, 16907, 35559}, // SMPTE 240M (1987)
	{0, 0, 0, 0},                   // YCgCo
	{110013, 140363, 12277, 42626}, // BT-2020-NCL
	{110013, 140363, 12277, 42626}, // BT-2020-CL
}

var coefficientSets = map[ColorSpace]CoefficientSet{
	CS_BT709:      SET_ITU709,
	CS_FCC:        SET_FCC,
	CS_SMPTE240M:  SET_SMPTE240M,
	CS_BT470BG:    SET_ITU601,
	CS_SMPTE170M:  SET_ITU601,
	CS_BT2020_NCL: SET_BT2020,
	CS_BT2020_CL:  SET_BT2020,
}

// ResolveCoefficients maps a frame colour space tag onto the coefficient set
// used to decode it. Unspecified and unrecognised tags resolve to SET_DEFAULT.
func ResolveCoefficients(cs ColorSpace) CoefficientSet {
	if set, ok := coefficientSets[cs]; ok {
		return set
	}
	return SET_DEFAULT
}

// CoefficientsFor returns the matrix constants for a coefficient set.
// Ids outside the table, and the unusable YCgCo slot, fall back to SET_DEFAULT.
func CoefficientsFor(id CoefficientSet) Coefficients {
	if id < 0 || int(id) >= len(coefficientTable) || id == 8 {
		id = SET_DEFAULT
	}
	return coefficientTable[id]
}

// RangeFlagFor returns RANGE_FULL for JPEG tagged frames and RANGE_LIMITED
// for everything else, including unspecified.
func RangeFlagFor(cr ColorRange) RangeFlag {
	if cr == CR_JPEG {
		return RANGE_FULL
	}
	return RANGE_LIMITED
}

// LumaWeights recovers the Kr and Kb luma weights a coefficient tuple was
// derived from. crv = 2(1-Kr)*255/224 and cbu = 2(1-Kb)*255/224.
func LumaWeights(c Coefficients) (kr float64, kb float64) {
	const scale = 224.0 / (255.0 * 2.0 * 65536.0)
	kr = 1 - float64(c[0])*scale
	kb = 1 - float64(c[1])*scale
	return kr, kb
}
