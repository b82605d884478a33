// Command jigsawdebug dumps intermediate extraction results for a single
// front/back scan pair: the traced back-side shapes (area, center, point
// count), the thresholded back-side mask when -mask-out is given, and the
// front image's size, in the style of the teacher's viatest/aligntest debug
// commands. It computes no compatibility scores.
package main

import (
	"flag"
	"fmt"
	"os"

	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/extract"
	"jigsaw-solver/internal/rasterimg"
)

func main() {
	frontPath := flag.String("f", "", "front scan image path")
	backPath := flag.String("b", "", "back scan image path")
	maskOut := flag.String("mask-out", "", "write the thresholded back-side mask to this path")
	configPath := flag.String("config", "", "YAML file overriding tuning constants")
	flag.Parse()

	if *frontPath == "" || *backPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: jigsawdebug -f front.jpg -b back.jpg [-mask-out mask.png] [-config file.yaml]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jigsawdebug: %v\n", err)
		os.Exit(1)
	}

	back, err := rasterimg.Load(*backPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jigsawdebug: load back image: %v\n", err)
		os.Exit(1)
	}
	defer back.Close()

	shapes := extract.BackShapes(back, cfg)
	fmt.Printf("Back-side shapes found: %d\n", len(shapes))
	for i, s := range shapes {
		fmt.Printf("  [%d] area=%.0f center=(%.1f, %.1f) points=%d\n", i, s.Area, s.Center.X, s.Center.Y, len(s.Curve))
	}

	if *maskOut != "" {
		gray := rasterimg.GrayscaleMax(back)
		defer gray.Close()
		hist := rasterimg.Histogram256(gray)
		t := rasterimg.OtsuIterativeThreshold(hist)
		mask := rasterimg.Threshold(gray, t)
		defer mask.Close()
		if err := mask.Save(*maskOut); err != nil {
			fmt.Fprintf(os.Stderr, "jigsawdebug: save mask: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote threshold mask (t=%d) to %s\n", t, *maskOut)
	}

	if *frontPath != "" {
		front, err := rasterimg.Load(*frontPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jigsawdebug: load front image: %v\n", err)
			os.Exit(1)
		}
		defer front.Close()
		fmt.Printf("Front image: %dx%d\n", front.Cols(), front.Rows())
	}
}
