package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type staticSource struct {
	words []string
	err   error
}

func (s staticSource) LoadWords(context.Context) ([]string, error) {
	return s.words, s.err
}

func TestParse(t *testing.T) {
	input := "# animals\nCat\n\n dog \ncat\nOwl\n"
	got, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"cat", "dog", "owl"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %v, want %v", got, want)
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader("# nothing here\n\n"))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse error = %v, want ErrEmpty", err)
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("maple\noak\n"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := File{Path: path}.LoadWords(context.Background())
	if err != nil {
		t.Fatalf("LoadWords: %v", err)
	}
	if len(got) != 2 || got[0] != "maple" {
		t.Errorf("LoadWords = %v", got)
	}

	if _, err := (File{Path: filepath.Join(t.TempDir(), "missing.txt")}).LoadWords(context.Background()); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestChain(t *testing.T) {
	failing := staticSource{err: errors.New("offline")}
	empty := staticSource{}
	good := staticSource{words: []string{"heron"}}

	got, err := Chain{failing, empty, good}.LoadWords(context.Background())
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"heron"}) {
		t.Errorf("Chain = %v, want [heron]", got)
	}

	if _, err := (Chain{failing, empty}).LoadWords(context.Background()); err == nil {
		t.Error("expected an error when every source fails")
	}
}

func TestLoadOrDefault(t *testing.T) {
	log := zerolog.Nop()
	tests := []struct {
		name string
		src  Source
		want []string
	}{
		{"nil source", nil, Defaults()},
		{"failing source", staticSource{err: errors.New("boom")}, Defaults()},
		{"empty source", staticSource{}, Defaults()},
		{"good source", staticSource{words: []string{"lynx"}}, []string{"lynx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LoadOrDefault(context.Background(), tt.src, log)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadOrDefault = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultsIsACopy(t *testing.T) {
	d := Defaults()
	d[0] = "changed"
	if Defaults()[0] != "cat" {
		t.Error("Defaults shares its backing array")
	}
}
