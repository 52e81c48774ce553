package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/tatianab/word-forest/internal/imagefetch"
	"github.com/tatianab/word-forest/internal/logging"
)

func main() {
	dir := flag.String("dir", "images", "directory to write images into")
	manifest := flag.String("manifest", "", "YAML manifest of images (default: built-in list)")
	workers := flag.Int("workers", imagefetch.DefaultWorkers, "concurrent downloads")
	flag.Parse()

	_ = godotenv.Load()
	log := logging.Console(os.Getenv("LOG_LEVEL"))

	m := imagefetch.DefaultManifest()
	if *manifest != "" {
		var err error
		m, err = imagefetch.LoadManifest(*manifest)
		if err != nil {
			fmt.Printf("Error loading manifest: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f := imagefetch.NewFetcher(*dir, log)
	f.Workers = *workers
	log.Info().Int("images", len(m.Images)).Str("dir", *dir).Msg("fetching images")
	results, err := f.FetchAll(ctx, m.Images)
	if err != nil {
		fmt.Printf("Error fetching images: %v\n", err)
		os.Exit(1)
	}

	downloaded, failed := 0, 0
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Source != imagefetch.FromPlaceholder:
			downloaded++
		}
	}
	fmt.Printf("Downloaded %d/%d images (%d placeholders, %d failed)\n",
		downloaded, len(results), len(results)-downloaded-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
