package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/kpfaulkner/videoframe-go/convert"
	"github.com/kpfaulkner/videoframe-go/imagedata"
	"github.com/kpfaulkner/videoframe-go/imageformats"
	"github.com/kpfaulkner/videoframe-go/options"
	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/y4m"
	log "github.com/sirupsen/logrus"
)

func main() {
	infile := flag.String("i", "", "input y4m file")
	outfile := flag.String("o", "", "output file")
	frameIndex := flag.Int("frame", 0, "index of the frame to convert")
	format := flag.String("format", "png", "output format: png, ppm or pfm")
	width := flag.Int("w", 0, "output width, 0 keeps the frame width")
	height := flag.Int("h", 0, "output height, 0 keeps the frame height")
	interp := flag.String("interp", "bicubic", "interpolation: bicubic, bilinear, fast-bilinear, nearest or area")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}

	interpolation, ok := options.ParseInterpolation(*interp)
	if !ok {
		fmt.Printf("unknown interpolation %s\n", *interp)
		os.Exit(1)
	}

	f, err := os.Open(*infile)
	if err != nil {
		log.Errorf("Error opening file: %v\n", err)
		return
	}
	defer f.Close()

	reader, err := y4m.NewReader(f)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	fmt.Printf("stream %v\n", reader.Header())

	start := time.Now()
	pb := picture.CreateEmpty()
	defer pb.Release()
	for i := 0; i <= *frameIndex; i++ {
		frame, err := reader.ReadFrame(nil)
		if err == io.EOF {
			log.Fatalf("stream has only %d frames", i)
		}
		if err != nil {
			log.Fatalf("boomage %v", err)
		}
		if err := pb.Update(frame); err != nil {
			log.Fatalf("boomage %v", err)
		}
	}
	fmt.Printf("reading took %d ms\n", time.Since(start).Milliseconds())
	fmt.Printf("frame %v\n", pb)

	bitmapFormat := imagedata.RGBA32
	if pb.PixelFormat() == picture.PIX_FMT_GRAY8 {
		bitmapFormat = imagedata.GRAY8
	}
	size := picture.Size{Width: int32(*width), Height: int32(*height)}

	startConverting := time.Now()
	conv := convert.NewImageConverter(size, bitmapFormat, &options.ConverterOptions{Debug: *debug, Interpolation: interpolation})
	defer conv.Close()
	bitmap, err := conv.ToBitmap(pb, bitmapFormat, size)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	defer bitmap.Dispose()
	fmt.Printf("converting took %d ms\n", time.Since(startConverting).Milliseconds())

	buf := new(bytes.Buffer)
	switch *format {
	case "png":
		err = png.Encode(buf, bitmap.ToImage())
	case "ppm":
		err = imageformats.WritePPM(bitmap, buf)
	case "pfm":
		err = imageformats.WritePFM(bitmap, buf)
	default:
		err = fmt.Errorf("unknown output format %s", *format)
	}
	if err != nil {
		log.Fatalf("boomage %v", err)
	}

	err = os.WriteFile(*outfile, buf.Bytes(), 0666)
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
}
