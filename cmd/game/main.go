package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tatianab/word-forest/internal/config"
	"github.com/tatianab/word-forest/internal/tui"
)

func main() {
	difficulty := flag.String("difficulty", "", "preselected difficulty: easy, medium or hard")
	wordsFile := flag.String("words", "", "file with one word per line")
	theme := flag.String("theme", "", "theme for Gemini-generated words")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *difficulty != "" {
		if err := cfg.SetDifficulty(*difficulty); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *wordsFile != "" {
		cfg.WordsFile = *wordsFile
	}
	if *theme != "" {
		cfg.WordTheme = *theme
	}

	if err := tui.StartWith(ctx, cfg); err != nil {
		fmt.Printf("Error running game: %v\n", err)
		os.Exit(1)
	}
}
