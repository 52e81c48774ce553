// Package words provides the word lists the game samples its targets from.
package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Source supplies candidate words.
type Source interface {
	LoadWords(ctx context.Context) ([]string, error)
}

// ErrEmpty is returned by sources that produced no usable words.
var ErrEmpty = errors.New("word list is empty")

var animals = []string{
	"cat", "dog", "bird", "fish", "frog", "bear", "lion", "tiger", "wolf", "deer", "fox", "rabbit",
	"owl", "duck", "goat", "horse", "mouse", "sheep", "snake", "zebra", "eagle", "otter", "panda", "whale",
}

// Defaults returns a copy of the built-in word list.
func Defaults() []string {
	out := make([]string, len(animals))
	copy(out, animals)
	return out
}

// Builtin is the built-in word list.
type Builtin struct{}

func (Builtin) LoadWords(context.Context) ([]string, error) {
	return Defaults(), nil
}

// File reads one word per line from a text file.
type File struct {
	Path string
}

func (f File) LoadWords(context.Context) ([]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	words, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Path, err)
	}
	return words, nil
}

// Parse reads a word list: one word per line, blank lines and lines starting
// with # ignored. Words are lowercased and duplicates dropped.
func Parse(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		w := strings.ToLower(line)
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Chain tries each source in order and returns the first non-empty list.
type Chain []Source

func (c Chain) LoadWords(ctx context.Context) ([]string, error) {
	var errs []error
	for _, src := range c {
		words, err := src.LoadWords(ctx)
		if err == nil && len(words) == 0 {
			err = ErrEmpty
		}
		if err == nil {
			return words, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrEmpty
	}
	return nil, errors.Join(errs...)
}

// LoadOrDefault loads words from src and falls back to the built-in list if
// src fails or returns nothing. It never fails.
func LoadOrDefault(ctx context.Context, src Source, log zerolog.Logger) []string {
	if src == nil {
		return Defaults()
	}
	words, err := src.LoadWords(ctx)
	if err == nil && len(words) == 0 {
		err = ErrEmpty
	}
	if err != nil {
		log.Warn().Err(err).Msg("word source unavailable, using built-in words")
		return Defaults()
	}
	log.Info().Int("count", len(words)).Msg("words loaded")
	return words
}
