package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-5, 0, 255))
	assert.Equal(t, 255, Clamp(300, 0, 255))
	assert.Equal(t, 128, Clamp(128, 0, 255))
	assert.Equal(t, float32(1.0), Clamp(float32(1.5), 0, 1))
}

func TestClampToByte(t *testing.T) {
	for _, tc := range []struct {
		name     string
		clamp    func() uint8
		expected uint8
	}{
		{name: "int below", clamp: func() uint8 { return ClampToByte(-12) }, expected: 0},
		{name: "int inside", clamp: func() uint8 { return ClampToByte(200) }, expected: 200},
		{name: "int32 above", clamp: func() uint8 { return ClampToByte(int32(256)) }, expected: 255},
		{name: "int64 above", clamp: func() uint8 { return ClampToByte(int64(1 << 40)) }, expected: 255},
		{name: "int64 below", clamp: func() uint8 { return ClampToByte(int64(-1 << 40)) }, expected: 0},
		{name: "float32 truncates", clamp: func() uint8 { return ClampToByte(float32(77.9)) }, expected: 77},
		{name: "float32 above", clamp: func() uint8 { return ClampToByte(float32(300)) }, expected: 255},
		{name: "float64 inside", clamp: func() uint8 { return ClampToByte(77.0) }, expected: 77},
		{name: "float64 rounding edge", clamp: func() uint8 { return ClampToByte(255.49) }, expected: 255},
		{name: "float64 below", clamp: func() uint8 { return ClampToByte(-0.5) }, expected: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.clamp())
		})
	}
}

func TestCeilDiv(t *testing.T) {
	tests := []struct {
		numerator   int
		denominator int
		expected    int
	}{
		{0, 2, 0},
		{1, 2, 1},
		{2, 2, 1},
		{1919, 2, 960},
		{1920, 32, 60},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CeilDiv(tt.numerator, tt.denominator))
	}
}

func TestAlignUp(t *testing.T) {
	tests := []struct {
		value    int
		align    int
		expected int
	}{
		{0, 32, 0},
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{960, 32, 960},
		{1366, 32, 1376},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AlignUp(tt.value, tt.align))
	}
}

func TestCeilShift(t *testing.T) {
	assert.Equal(t, 960, CeilShift(1920, 1))
	assert.Equal(t, 541, CeilShift(1081, 1))
	assert.Equal(t, 1, CeilShift(1, 1))
	assert.Equal(t, 5, CeilShift(5, 0))
}
