package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/kpfaulkner/videoframe-go/colour"
	"github.com/kpfaulkner/videoframe-go/convert"
	"github.com/kpfaulkner/videoframe-go/imagedata"
	"github.com/kpfaulkner/videoframe-go/options"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/y4m"
	log "github.com/sirupsen/logrus"
)

var chroma = map[string]picture.PixelFormat{
	"420":  picture.PIX_FMT_YUV420P,
	"422":  picture.PIX_FMT_YUV422P,
	"444":  picture.PIX_FMT_YUV444P,
	"mono": picture.PIX_FMT_GRAY8,
}

var matrices = map[string]colour.ColorSpace{
	"bt601":  colour.CS_SMPTE170M,
	"bt709":  colour.CS_BT709,
	"bt2020": colour.CS_BT2020_NCL,
}

func main() {
	infile := flag.String("i", "", "input png or jpeg file")
	outfile := flag.String("o", "", "output y4m file")
	sampling := flag.String("c", "420", "chroma sampling: 420, 422, 444 or mono")
	matrix := flag.String("matrix", "bt709", "colour matrix: bt601, bt709 or bt2020")
	full := flag.Bool("full", false, "write full range samples")
	frames := flag.Int("frames", 1, "number of times the image is repeated")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}
	pf, ok := chroma[*sampling]
	if !ok {
		fmt.Printf("unknown chroma sampling %s\n", *sampling)
		os.Exit(1)
	}
	cs, ok := matrices[*matrix]
	if !ok {
		fmt.Printf("unknown matrix %s\n", *matrix)
		os.Exit(1)
	}
	cr := colour.CR_MPEG
	if *full {
		cr = colour.CR_JPEG
	}

	in, err := os.Open(*infile)
	if err != nil {
		log.Errorf("Error opening file: %v\n", err)
		return
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	conv := convert.NewImageConverter(picture.Size{}, imagedata.RGBA32, &options.ConverterOptions{Debug: *debug})
	defer conv.Close()
	pb, err := conv.FillFrame(imagedata.FromImage(img), pf, cs, cr)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	defer pb.Release()

	out, err := os.Create(*outfile)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	defer out.Close()

	layout := pb.Layout()
	w, err := y4m.NewWriter(out, y4m.Header{
		Width:        layout.Width,
		Height:       layout.Height,
		FrameRateNum: 25,
		FrameRateDen: 1,
		Interlacing:  'p',
		PixelFormat:  pf,
		ColorSpace:   cs,
		ColorRange:   cr,
	})
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	for i := 0; i < *frames; i++ {
		if err := w.WriteFrame(pb); err != nil {
			log.Fatalf("boomage %v", err)
		}
	}
	fmt.Printf("wrote %d frames of %v\n", *frames, pb)
}
