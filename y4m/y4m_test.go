package y4m

import (
	"bytes"
	"io"
	"testing"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {

	for _, tc := range []struct {
		name        string
		line        string
		expected    Header
		expectedErr error
	}{
		{
			name: "ffmpeg style",
			line: "YUV4MPEG2 W640 H480 F30000:1001 Ip A1:1 C420jpeg XYSCSS=420JPEG XCOLORRANGE=LIMITED",
			expected: Header{Width: 640, Height: 480, FrameRateNum: 30000, FrameRateDen: 1001, Interlacing: 'p',
				AspectNum: 1, AspectDen: 1, PixelFormat: picture.PIX_FMT_YUV420P, ColorSpace: colour.CS_UNSPECIFIED,
				ColorRange: colour.CR_MPEG, Extensions: []string{"YSCSS=420JPEG"}},
		},
		{
			name: "defaults",
			line: "YUV4MPEG2 W16 H8",
			expected: Header{Width: 16, Height: 8, FrameRateNum: 25, FrameRateDen: 1, Interlacing: '?',
				PixelFormat: picture.PIX_FMT_YUV420P, ColorSpace: colour.CS_UNSPECIFIED, ColorRange: colour.CR_UNSPECIFIED},
		},
		{
			name: "444 full bt709",
			line: "YUV4MPEG2 W4 H4 F25:1 C444 XCOLORRANGE=FULL XCOLORSPACE=BT709",
			expected: Header{Width: 4, Height: 4, FrameRateNum: 25, FrameRateDen: 1, Interlacing: '?',
				PixelFormat: picture.PIX_FMT_YUV444P, ColorSpace: colour.CS_BT709, ColorRange: colour.CR_JPEG},
		},
		{
			name: "mono",
			line: "YUV4MPEG2 W4 H2 Cmono",
			expected: Header{Width: 4, Height: 2, FrameRateNum: 25, FrameRateDen: 1, Interlacing: '?',
				PixelFormat: picture.PIX_FMT_GRAY8, ColorSpace: colour.CS_UNSPECIFIED, ColorRange: colour.CR_UNSPECIFIED},
		},
		{name: "bad signature", line: "YUV4MPEG W4 H4", expectedErr: ErrInvalidHeader},
		{name: "missing height", line: "YUV4MPEG2 W4", expectedErr: ErrInvalidHeader},
		{name: "negative width", line: "YUV4MPEG2 W-4 H4", expectedErr: ErrInvalidHeader},
		{name: "bad rate", line: "YUV4MPEG2 W4 H4 F25", expectedErr: ErrInvalidHeader},
		{name: "too large", line: "YUV4MPEG2 W100000 H100000", expectedErr: ErrInvalidHeader},
		{name: "unsupported chroma", line: "YUV4MPEG2 W4 H4 C420p10", expectedErr: ErrUnsupportedFormat},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h, err := ParseHeader(tc.line)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, h)
		})
	}
}

func TestHeaderStringRoundTrip(t *testing.T) {
	h := Header{Width: 8, Height: 6, FrameRateNum: 24, FrameRateDen: 1, Interlacing: 'p', AspectNum: 1, AspectDen: 1,
		PixelFormat: picture.PIX_FMT_YUV422P, ColorSpace: colour.CS_BT2020_NCL, ColorRange: colour.CR_JPEG,
		Extensions: []string{"CUSTOM=1"}}

	assert.Equal(t, "YUV4MPEG2 W8 H6 F24:1 Ip A1:1 C422 XCOLORRANGE=FULL XCOLORSPACE=BT2020 XCUSTOM=1", h.String())

	parsed, err := ParseHeader(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, parsed)
}

func fillPicture(t *testing.T, size picture.Size, pf picture.PixelFormat, seed byte) *picture.Buffer {
	pb, err := picture.Create(size, pf)
	require.NoError(t, err)
	for p := 0; p < picture.MaxPlanes; p++ {
		plane := pb.Plane(p)
		for i := range plane {
			plane[i] = seed + byte(p*50) + byte(i%7)
		}
	}
	return pb
}

func TestWriteReadRoundTrip(t *testing.T) {

	for _, tc := range []struct {
		name string
		pf   picture.PixelFormat
		cs   colour.ColorSpace
		cr   colour.ColorRange
	}{
		{name: "420 untagged", pf: picture.PIX_FMT_YUV420P, cs: colour.CS_UNSPECIFIED, cr: colour.CR_UNSPECIFIED},
		{name: "422 bt709 limited", pf: picture.PIX_FMT_YUV422P, cs: colour.CS_BT709, cr: colour.CR_MPEG},
		{name: "444 bt601 full", pf: picture.PIX_FMT_YUV444P, cs: colour.CS_SMPTE170M, cr: colour.CR_JPEG},
		{name: "mono", pf: picture.PIX_FMT_GRAY8, cs: colour.CS_UNSPECIFIED, cr: colour.CR_JPEG},
	} {
		t.Run(tc.name, func(t *testing.T) {
			size := picture.Size{Width: 7, Height: 5}
			header := Header{Width: size.Width, Height: size.Height, PixelFormat: tc.pf, ColorSpace: tc.cs, ColorRange: tc.cr}

			var buf bytes.Buffer
			w, err := NewWriter(&buf, header)
			require.NoError(t, err)

			var written []*picture.Buffer
			for i := 0; i < 3; i++ {
				pb := fillPicture(t, size, tc.pf, byte(i*10))
				defer pb.Release()
				require.NoError(t, w.WriteFrame(pb))
				written = append(written, pb)
			}

			r, err := NewReader(&buf)
			require.NoError(t, err)
			assert.Equal(t, tc.pf, r.Header().PixelFormat)
			assert.Equal(t, int32(7), r.Header().Width)

			desc, _ := tc.pf.Descriptor()
			for i, expected := range written {
				frame, err := r.ReadFrame(nil)
				require.NoError(t, err)
				pb, err := picture.FromExisting(frame)
				require.NoError(t, err)

				assert.Equal(t, int64(i), pb.Pts())
				assert.Equal(t, tc.cs, pb.ColorSpace())
				assert.Equal(t, tc.cr, pb.ColorRange())
				for p := 0; p < desc.Planes; p++ {
					width := desc.PlaneWidth(p, 7)
					for y := 0; y < desc.PlaneHeight(p, 5); y++ {
						assert.Equal(t,
							expected.Plane(p)[y*expected.Linesize(p):y*expected.Linesize(p)+width],
							pb.Plane(p)[y*pb.Linesize(p):y*pb.Linesize(p)+width])
					}
				}
				pb.Release()
			}

			_, err = r.ReadFrame(nil)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestReadFrameErrors(t *testing.T) {

	for _, tc := range []struct {
		name        string
		stream      string
		expectedErr error
	}{
		{name: "truncated frame", stream: "YUV4MPEG2 W2 H2 C444\nFRAME\n\x10\x10", expectedErr: ErrInvalidFrame},
		{name: "bad marker", stream: "YUV4MPEG2 W2 H2 C444\nFRAMX\n", expectedErr: ErrInvalidFrame},
		{name: "partial marker", stream: "YUV4MPEG2 W2 H2 C444\nFRA", expectedErr: ErrInvalidFrame},
		{name: "empty stream body", stream: "YUV4MPEG2 W2 H2 C444\n", expectedErr: io.EOF},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(bytes.NewReader([]byte(tc.stream)))
			require.NoError(t, err)
			_, err = r.ReadFrame(nil)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestFrameParametersIgnored(t *testing.T) {
	stream := "YUV4MPEG2 W2 H1 Cmono\nFRAME Ip XFOO=1\n\x01\x02"
	r, err := NewReader(bytes.NewReader([]byte(stream)))
	require.NoError(t, err)

	frame, err := r.ReadFrame(nil)
	require.NoError(t, err)
	defer frame.Free()
	assert.Equal(t, []byte{1, 2}, frame.Video().Planes[0][:2])
}

func TestNewReaderRejectsGarbage(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidHeader)

	_, err = NewReader(bytes.NewReader([]byte("P6\n2 2\n255\n")))
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestWriterRejectsMismatch(t *testing.T) {
	_, err := NewWriter(io.Discard, Header{Width: 4, Height: 4, PixelFormat: picture.PIX_FMT_NV12})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	w, err := NewWriter(io.Discard, Header{Width: 4, Height: 4, PixelFormat: picture.PIX_FMT_YUV420P})
	require.NoError(t, err)

	pb := fillPicture(t, picture.Size{Width: 8, Height: 4}, picture.PIX_FMT_YUV420P, 0)
	defer pb.Release()
	assert.ErrorIs(t, w.WriteFrame(pb), ErrInvalidFrame)

	released := fillPicture(t, picture.Size{Width: 4, Height: 4}, picture.PIX_FMT_YUV420P, 0)
	released.Release()
	assert.ErrorIs(t, w.WriteFrame(released), picture.ErrReleased)
}
