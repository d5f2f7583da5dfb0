package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kpfaulkner/videoframe-go/picture"
	"github.com/kpfaulkner/videoframe-go/y4m"
)

func main() {
	infile := flag.String("i", "", "input y4m file")
	flag.Parse()

	f, err := os.Open(*infile)
	if err != nil {
		fmt.Printf("Error opening: %v\n", err)
		return
	}
	defer f.Close()

	reader, err := y4m.NewReader(f)
	if err != nil {
		fmt.Printf("Error reading header: %v\n", err)
		return
	}
	fmt.Printf("%v\n", reader.Header())

	pb := picture.CreateEmpty()
	defer pb.Release()
	for {
		frame, err := reader.ReadFrame(nil)
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error decoding: %v\n", err)
			return
		}
		if err := pb.Update(frame); err != nil {
			fmt.Printf("Error decoding: %v\n", err)
			return
		}
		fmt.Printf("%d: %v\n", pb.Pts(), pb)
	}
}
