package main

import (
	"fmt"
	"time"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/convert"
	"github.com/kpfaulkner/videoframe-go/imagedata"
	"github.com/kpfaulkner/videoframe-go/options"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/util"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

type benchCase struct {
	name   string
	size   picture.Size
	pf     picture.PixelFormat
	target picture.Size
	format imagedata.ImagePixelFormat
}

func syntheticFrame(size picture.Size, pf picture.PixelFormat) (*picture.Buffer, error) {
	pb, err := picture.Create(size, pf)
	if err != nil {
		return nil, err
	}
	pb.SetColorSpace(colour.CS_BT709)
	pb.SetColorRange(colour.CR_MPEG)
	for p := 0; p < picture.MaxPlanes; p++ {
		plane := pb.Plane(p)
		for i := range plane {
			plane[i] = byte(16 + (i*7+p*31)%219)
		}
	}
	return pb, nil
}

func main() {

	cases := []benchCase{
		{name: "1080p 420 to bgra", size: picture.Size{Width: 1920, Height: 1080}, pf: picture.PIX_FMT_YUV420P, format: imagedata.BGRA32},
		{name: "1080p nv12 to 720p rgb", size: picture.Size{Width: 1920, Height: 1080}, pf: picture.PIX_FMT_NV12, target: picture.Size{Width: 1280, Height: 720}, format: imagedata.RGB24},
		{name: "720p 444 to gray", size: picture.Size{Width: 1280, Height: 720}, pf: picture.PIX_FMT_YUV444P, format: imagedata.GRAY8},
	}

	//p := profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	defer p.Stop()

	for _, bc := range cases {
		fmt.Printf("case %s\n", bc.name)
		pb, err := syntheticFrame(bc.size, bc.pf)
		if err != nil {
			log.Errorf("Error creating frame: %v\n", err)
			return
		}

		conv := convert.NewImageConverter(bc.target, bc.format, &options.ConverterOptions{Interpolation: options.INTERPOLATION_BILINEAR})
		start := time.Now()
		for count := 0; count < 20; count++ {
			bitmap, err := conv.ToBitmap(pb, bc.format, bc.target)
			if err != nil {
				log.Errorf("Error converting: %v\n", err)
				return
			}
			bitmap.Dispose()
		}
		fmt.Printf("conversion took %d ms per frame\n", time.Since(start).Milliseconds()/20)

		conv.Close()
		pb.Release()
	}

	fmt.Printf("pool metrics %v\n", util.GetPoolMetrics())
}
