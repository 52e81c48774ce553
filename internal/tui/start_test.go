package tui

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tatianab/word-forest/internal/config"
	"github.com/tatianab/word-forest/internal/words"
)

func TestWordSource(t *testing.T) {
	ctx := context.Background()

	src, cleanup := WordSource(ctx, &config.Config{}, zerolog.Nop())
	cleanup()
	if src != nil {
		t.Errorf("source = %#v, want nil without a words file or API key", src)
	}

	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("Maple\n# comment\nbirch\n"), 0644); err != nil {
		t.Fatal(err)
	}
	src, cleanup = WordSource(ctx, &config.Config{WordsFile: path}, zerolog.Nop())
	defer cleanup()

	chain, ok := src.(words.Chain)
	if !ok || len(chain) != 1 {
		t.Fatalf("source = %#v, want a one-element chain", src)
	}
	got := words.LoadOrDefault(ctx, src, zerolog.Nop())
	if len(got) != 2 || got[0] != "maple" || got[1] != "birch" {
		t.Errorf("words = %v, want [maple birch]", got)
	}
}
