package scale

import (
	"image"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/util"
)

// yuvTables holds the 16.16 fixed point factors for YUV->RGB and the
// luma weights for RGB->YUV, in the manner of ff_yuv2rgb_c_init_tables.
type yuvTables struct {
	cy  int64
	oy  int64
	crv int64
	cbu int64
	cgu int64
	cgv int64

	kr      float64
	kb      float64
	dstFull bool
}

func newYUVTables(d colour.ColorSpaceDetails) yuvTables {
	crv := int64(d.SourceCoefficients[0])
	cbu := int64(d.SourceCoefficients[1])
	cgu := -int64(d.SourceCoefficients[2])
	cgv := -int64(d.SourceCoefficients[3])
	cy := int64(1 << 16)
	oy := int64(0)

	if d.SourceRange == colour.RANGE_FULL {
		crv = crv * 224 / 255
		cbu = cbu * 224 / 255
		cgu = cgu * 224 / 255
		cgv = cgv * 224 / 255
	} else {
		cy = cy * 255 / 219
		oy = 16 << 16
	}

	contrast := int64(d.Contrast)
	saturation := int64(d.Saturation)
	cy = (cy * contrast) >> 16
	crv = (crv * contrast * saturation) >> 32
	cbu = (cbu * contrast * saturation) >> 32
	cgu = (cgu * contrast * saturation) >> 32
	cgv = (cgv * contrast * saturation) >> 32
	oy -= 256 * int64(d.Brightness)

	kr, kb := colour.LumaWeights(d.DestinationCoefficients)

	return yuvTables{
		cy:      cy,
		oy:      oy,
		crv:     crv,
		cbu:     cbu,
		cgu:     cgu,
		cgv:     cgv,
		kr:      kr,
		kb:      kb,
		dstFull: d.DestinationRange == colour.RANGE_FULL,
	}
}

const half = 1 << 15

func (t *yuvTables) toRGB(y uint8, u uint8, v uint8) (uint8, uint8, uint8) {
	yy := ((int64(y) << 16) - t.oy) * t.cy >> 16
	cu := int64(u) - 128
	cv := int64(v) - 128

	r := (yy + t.crv*cv + half) >> 16
	g := (yy + t.cgu*cu + t.cgv*cv + half) >> 16
	b := (yy + t.cbu*cu + half) >> 16
	return util.ClampToByte(r), util.ClampToByte(g), util.ClampToByte(b)
}

func (t *yuvTables) luma(r float64, g float64, b float64) float64 {
	return t.kr*r + (1-t.kr-t.kb)*g + t.kb*b
}

func (t *yuvTables) toY(r uint8, g uint8, b uint8) uint8 {
	y := t.luma(float64(r), float64(g), float64(b))
	if !t.dstFull {
		y = 16 + y*219/255
	}
	return util.ClampToByte(y + 0.5)
}

func (t *yuvTables) toUV(r float64, g float64, b float64) (uint8, uint8) {
	y := t.luma(r, g, b)
	cb := (b - y) / (2 * (1 - t.kb))
	cr := (r - y) / (2 * (1 - t.kr))
	if !t.dstFull {
		cb = cb * 224 / 255
		cr = cr * 224 / 255
	}
	return util.ClampToByte(128 + cb + 0.5), util.ClampToByte(128 + cr + 0.5)
}

// unpack converts the source planes into the RGBA working image.
func (c *Context) unpack(src Planes, work *image.RGBA) {
	d := c.srcDesc
	w, h := c.src.Width, c.src.Height

	for y := 0; y < h; y++ {
		out := work.Pix[y*work.Stride : y*work.Stride+w*4]
		switch d.Family {
		case picture.FAMILY_RGB:
			row := src.Data[0][y*src.Linesize[0]:]
			step := d.PixelStep[0]
			for x := 0; x < w; x++ {
				px := row[x*step:]
				out[x*4] = px[d.RGBAOffsets[0]]
				out[x*4+1] = px[d.RGBAOffsets[1]]
				out[x*4+2] = px[d.RGBAOffsets[2]]
				out[x*4+3] = 255
				if d.RGBAOffsets[3] >= 0 {
					out[x*4+3] = px[d.RGBAOffsets[3]]
				}
			}

		case picture.FAMILY_GRAY:
			row := src.Data[0][y*src.Linesize[0]:]
			for x := 0; x < w; x++ {
				r, g, b := c.tables.toRGB(row[x], 128, 128)
				out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = r, g, b, 255
			}

		case picture.FAMILY_YUV:
			yRow := src.Data[0][y*src.Linesize[0]:]
			cyy := y >> d.Log2ChromaH
			uRow := src.Data[1][cyy*src.Linesize[1]:]
			vRow := src.Data[2][cyy*src.Linesize[2]:]
			for x := 0; x < w; x++ {
				cx := x >> d.Log2ChromaW
				r, g, b := c.tables.toRGB(yRow[x], uRow[cx], vRow[cx])
				out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = r, g, b, 255
			}

		case picture.FAMILY_NV:
			yRow := src.Data[0][y*src.Linesize[0]:]
			cRow := src.Data[1][(y>>d.Log2ChromaH)*src.Linesize[1]:]
			uOff, vOff := 0, 1
			if d.ChromaSwapped {
				uOff, vOff = 1, 0
			}
			for x := 0; x < w; x++ {
				cx := (x >> d.Log2ChromaW) * 2
				r, g, b := c.tables.toRGB(yRow[x], cRow[cx+uOff], cRow[cx+vOff])
				out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = r, g, b, 255
			}
		}
	}
}

// pack writes the RGBA working image into the destination planes.
func (c *Context) pack(work *image.RGBA, dst Planes) {
	d := c.dstDesc
	w, h := c.dst.Width, c.dst.Height

	switch d.Family {
	case picture.FAMILY_RGB:
		step := d.PixelStep[0]
		for y := 0; y < h; y++ {
			in := work.Pix[y*work.Stride:]
			row := dst.Data[0][y*dst.Linesize[0]:]
			for x := 0; x < w; x++ {
				px := row[x*step:]
				px[d.RGBAOffsets[0]] = in[x*4]
				px[d.RGBAOffsets[1]] = in[x*4+1]
				px[d.RGBAOffsets[2]] = in[x*4+2]
				if d.RGBAOffsets[3] >= 0 {
					px[d.RGBAOffsets[3]] = in[x*4+3]
				}
			}
		}

	case picture.FAMILY_GRAY:
		for y := 0; y < h; y++ {
			in := work.Pix[y*work.Stride:]
			row := dst.Data[0][y*dst.Linesize[0]:]
			for x := 0; x < w; x++ {
				row[x] = c.tables.toY(in[x*4], in[x*4+1], in[x*4+2])
			}
		}

	case picture.FAMILY_YUV, picture.FAMILY_NV:
		for y := 0; y < h; y++ {
			in := work.Pix[y*work.Stride:]
			row := dst.Data[0][y*dst.Linesize[0]:]
			for x := 0; x < w; x++ {
				row[x] = c.tables.toY(in[x*4], in[x*4+1], in[x*4+2])
			}
		}
		c.packChroma(work, dst)
	}
}

// packChroma averages each subsampled block before converting it.
func (c *Context) packChroma(work *image.RGBA, dst Planes) {
	d := c.dstDesc
	w, h := c.dst.Width, c.dst.Height
	chromaRows := d.PlaneHeight(1, h)
	chromaCols := util.CeilShift(w, d.Log2ChromaW)
	blockW, blockH := 1<<d.Log2ChromaW, 1<<d.Log2ChromaH

	for cyy := 0; cyy < chromaRows; cyy++ {
		for cx := 0; cx < chromaCols; cx++ {
			var r, g, b float64
			n := 0
			for by := cyy * blockH; by < min((cyy+1)*blockH, h); by++ {
				in := work.Pix[by*work.Stride:]
				for bx := cx * blockW; bx < min((cx+1)*blockW, w); bx++ {
					r += float64(in[bx*4])
					g += float64(in[bx*4+1])
					b += float64(in[bx*4+2])
					n++
				}
			}
			u, v := c.tables.toUV(r/float64(n), g/float64(n), b/float64(n))

			if d.Family == picture.FAMILY_NV {
				row := dst.Data[1][cyy*dst.Linesize[1]:]
				if d.ChromaSwapped {
					u, v = v, u
				}
				row[cx*2], row[cx*2+1] = u, v
				continue
			}
			dst.Data[1][cyy*dst.Linesize[1]+cx] = u
			dst.Data[2][cyy*dst.Linesize[2]+cx] = v
		}
	}
}
