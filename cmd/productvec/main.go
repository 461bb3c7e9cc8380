package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"productvec/internal/config"
	"productvec/internal/imaging"
	"productvec/internal/palette"
	"productvec/internal/pipeline"
	"productvec/internal/server"
	"productvec/internal/svgout"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("productvec %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	var (
		input     = flag.String("input", "", "input photo (jpg or png)")
		output    = flag.String("output", "", "output SVG path (default: input with .svg extension)")
		crop      = flag.Bool("crop", false, "crop to the detected main object before vectorizing")
		serve     = flag.Bool("serve", false, "run the HTTP API instead of converting one file")
		addr      = flag.String("addr", ":8080", "listen address in serve mode")
		uploadDir = flag.String("upload-dir", "uploads", "upload directory in serve mode")
		cfgPath   = flag.String("config", "", "YAML config file (default: built-in settings)")
	)
	flag.Usage = usage
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}

	if *serve {
		if err := os.MkdirAll(*uploadDir, 0o755); err != nil {
			log.Fatalf("create upload dir: %v", err)
		}
		srv := server.New(cfg, *uploadDir)
		log.Printf("productvec %s listening on %s", Version, *addr)
		if err := http.ListenAndServe(*addr, srv.Handler()); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	if *input == "" {
		usage()
		os.Exit(2)
	}
	out := *output
	if out == "" {
		out = replaceExt(*input, ".svg")
	}
	if err := convert(*input, out, *crop, cfg); err != nil {
		log.Fatalf("%s: %v", *input, err)
	}
	fmt.Println(out)
}

func convert(input, output string, crop bool, cfg config.Config) error {
	img, err := imaging.NewImageCache().Load(input)
	if err != nil {
		return err
	}

	if crop {
		body, err := pipeline.DetectMainObject(img, cfg)
		if err != nil {
			log.Printf("main object detection failed, using full frame: %v", err)
		} else {
			cropped, _, err := pipeline.CropToBody(img, body, cfg)
			if err != nil {
				return fmt.Errorf("crop: %w", err)
			}
			img = cropped
		}
	}

	res, err := pipeline.Detect(context.Background(), img, cfg)
	if err != nil {
		return err
	}

	opts := svgout.Options{}
	if res.BodyID >= 0 {
		body := &res.Regions[res.BodyID]
		opts.BodyGradient = palette.New(img).GradientStops(body.Bounds, 4)
	}
	doc := svgout.Generate(res.Width, res.Height, res.Regions, opts)

	return os.WriteFile(output, []byte(doc), 0o644)
}

func replaceExt(path, ext string) string {
	for i := len(path) - 1; i >= 0 && path[i] != '/'; i-- {
		if path[i] == '.' {
			return path[:i] + ext
		}
	}
	return path + ext
}

func usage() {
	fmt.Fprintln(os.Stderr, "productvec - convert product photos to parametric SVG")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  productvec -input photo.jpg [-output photo.svg] [-crop]")
	fmt.Fprintln(os.Stderr, "  productvec -serve [-addr :8080] [-upload-dir uploads]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
