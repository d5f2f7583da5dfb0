package picture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelFormatDescriptor(t *testing.T) {

	for _, tc := range []struct {
		name           string
		pf             PixelFormat
		width, height  int
		expectedWidths []int
		expectedRows   []int
	}{
		{name: "yuv420p even", pf: PIX_FMT_YUV420P, width: 640, height: 480, expectedWidths: []int{640, 320, 320}, expectedRows: []int{480, 240, 240}},
		{name: "yuv420p odd", pf: PIX_FMT_YUV420P, width: 5, height: 3, expectedWidths: []int{5, 3, 3}, expectedRows: []int{3, 2, 2}},
		{name: "yuv422p", pf: PIX_FMT_YUV422P, width: 640, height: 480, expectedWidths: []int{640, 320, 320}, expectedRows: []int{480, 480, 480}},
		{name: "yuv444p", pf: PIX_FMT_YUV444P, width: 8, height: 4, expectedWidths: []int{8, 8, 8}, expectedRows: []int{4, 4, 4}},
		{name: "nv12", pf: PIX_FMT_NV12, width: 7, height: 5, expectedWidths: []int{7, 8}, expectedRows: []int{5, 3}},
		{name: "rgb24", pf: PIX_FMT_RGB24, width: 10, height: 2, expectedWidths: []int{30}, expectedRows: []int{2}},
		{name: "bgra", pf: PIX_FMT_BGRA, width: 10, height: 2, expectedWidths: []int{40}, expectedRows: []int{2}},
		{name: "gray", pf: PIX_FMT_GRAY8, width: 10, height: 2, expectedWidths: []int{10}, expectedRows: []int{2}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, ok := tc.pf.Descriptor()
			assert.True(t, ok)
			assert.Equal(t, len(tc.expectedWidths), d.Planes)
			for p := range tc.expectedWidths {
				assert.Equal(t, tc.expectedWidths[p], d.PlaneWidth(p, tc.width), "plane %d width", p)
				assert.Equal(t, tc.expectedRows[p], d.PlaneHeight(p, tc.height), "plane %d rows", p)
			}
			assert.Equal(t, 0, d.PlaneWidth(d.Planes, tc.width))
		})
	}
}

func TestPixelFormatClassification(t *testing.T) {
	assert.True(t, PIX_FMT_YUV420P.IsYUV())
	assert.True(t, PIX_FMT_NV21.IsYUV())
	assert.False(t, PIX_FMT_RGB24.IsYUV())
	assert.True(t, PIX_FMT_BGR24.IsRGB())
	assert.False(t, PIX_FMT_GRAY8.IsRGB())
	assert.True(t, PIX_FMT_ARGB.HasAlpha())
	assert.False(t, PIX_FMT_RGB24.HasAlpha())
	assert.False(t, PIX_FMT_NONE.IsValid())
	assert.Equal(t, "none", PIX_FMT_NONE.String())
	assert.Equal(t, "nv12", PIX_FMT_NV12.String())
	assert.Equal(t, "pixfmt(77)", PixelFormat(77).String())
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(1920, 1080))
	assert.NoError(t, CheckSize(1, 1))
	assert.Error(t, CheckSize(0, 1))
	assert.Error(t, CheckSize(1, -1))
	assert.Error(t, CheckSize(16384, 16384))
}
