// Command ditherimg generates a blue-noise dither array and writes it out
// as a grayscale threshold-map PNG.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/voidcluster/dither"
)

// Exit codes follow spec.md's documented CLI contract: 0 success, 1
// invalid arguments, 2 I/O failure writing output.
const (
	exitOK = iota
	exitInvalidArgs
	exitIOFailure
)

func main() {
	var (
		width     = flag.Int("width", 64, "array width")
		height    = flag.Int("height", 64, "array height")
		output    = flag.String("output", "dither.png", "output PNG path")
		seed      = flag.Uint64("seed", 1, "RNG seed for the initial pattern")
		threads   = flag.Uint("threads", 0, "CPU worker count (0 = GOMAXPROCS, clamped to 10)")
		backend   = flag.String("backend", "auto", "back-end preference: auto, cpu, gpu")
		overwrite = flag.Bool("overwrite", false, "allow overwriting an existing output file")
		verbose   = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		dither.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if !*overwrite {
		if _, err := os.Stat(*output); err == nil {
			log.Printf("%s already exists; pass -overwrite to replace it", *output)
			os.Exit(exitInvalidArgs)
		}
	}

	prefs := dither.Preferences{
		Seed:    *seed,
		Threads: uint32(*threads),
	}
	switch *backend {
	case "cpu":
		prefs.BackEnd = dither.BackEndCPU
	case "gpu":
		prefs.BackEnd = dither.BackEndGPU
	case "auto":
		prefs.BackEnd = dither.BackEndAuto
	default:
		log.Printf("unknown -backend %q: want auto, cpu, or gpu", *backend)
		os.Exit(exitInvalidArgs)
	}

	png, err := dither.GenerateImage(context.Background(), *width, *height, prefs)
	if err != nil {
		log.Printf("generate: %v", err)
		os.Exit(exitInvalidArgs)
	}
	if err := os.WriteFile(*output, png, 0o644); err != nil {
		log.Printf("write %s: %v", *output, err)
		os.Exit(exitIOFailure)
	}

	log.Printf("dither array saved to %s (%dx%d)\n", *output, *width, *height)
}
