// Command jigsaw-solve reconstructs a scanned, disassembled jigsaw puzzle
// from repeated front/back scan pairs and writes the assembled image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"jigsaw-solver/internal/config"
	"jigsaw-solver/internal/reconstruct"
	"jigsaw-solver/internal/version"
)

// stringList accumulates repeated occurrences of a flag (-f a.jpg -f b.jpg)
// into a slice, in the style of the teacher's flag.Value implementations.
type stringList []string

func (s *stringList) String() string { return fmt.Sprint([]string(*s)) }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var fronts, backs stringList
	flag.Var(&fronts, "f", "front scan image path (repeatable, one per sheet)")
	flag.Var(&backs, "b", "back scan image path (repeatable, one per sheet, same order as -f)")
	output := flag.String("o", "output.jpg", "output image path")
	configPath := flag.String("config", "", "YAML file overriding tuning constants")
	maxFrameAttempts := flag.Int("max-frame-attempts", 50, "k-best candidates tried before giving up on the frame")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("jigsaw-solve %s (%s, %s)\n", version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if len(fronts) == 0 || len(backs) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: jigsaw-solve -f front1.jpg [-f front2.jpg ...] -b back1.jpg [-b back2.jpg ...] [-o output.jpg] [-config file.yaml]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jigsaw-solve: %v\n", err)
		os.Exit(1)
	}

	result, err := reconstruct.Run(fronts, backs, *maxFrameAttempts, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jigsaw-solve: %v\n", err)
		os.Exit(exitCodeFor(err))
	}
	defer result.Image.Close()

	if err := result.Image.Save(*output); err != nil {
		fmt.Fprintf(os.Stderr, "jigsaw-solve: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Reconstructed %d pieces into a %dx%d grid: %s\n",
		result.Store.NumPieces(), result.Layout.W, result.Layout.H, *output)
}

// exitCodeFor maps a reconstruct error kind to a process exit code (spec
// §7: errors propagate as result values up to the top-level driver, which
// prints a human-readable message and exits non-zero).
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, reconstruct.ErrInputMismatch):
		return 2
	case errors.Is(err, reconstruct.ErrUnreadableImage):
		return 3
	case errors.Is(err, reconstruct.ErrFrameInfeasible):
		return 4
	default:
		return 1
	}
}
