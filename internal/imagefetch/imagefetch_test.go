package imagefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("PNGDATA"))
	})
	mux.HandleFunc("/missing.png", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestFetcher(t *testing.T) *Fetcher {
	return NewFetcher(t.TempDir(), zerolog.Nop())
}

func TestFetchSources(t *testing.T) {
	srv := newServer(t)
	tests := []struct {
		name     string
		img      Image
		want     Source
		wantFile string
	}{
		{"primary", Image{URL: srv.URL + "/ok.png", Filename: "a.png"}, FromPrimary, "a.png"},
		{"fallback", Image{URL: srv.URL + "/missing.png", FallbackURL: srv.URL + "/ok.png", Filename: "b.png"}, FromFallback, "b.png"},
		{"placeholder", Image{URL: srv.URL + "/missing.png", FallbackURL: srv.URL + "/missing.png", Filename: "c.png"}, FromPlaceholder, "c.svg"},
		{"placeholder without fallback", Image{URL: "http://127.0.0.1:1/none.png", Filename: "d.png"}, FromPlaceholder, "d.svg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t)
			res := f.Fetch(context.Background(), tt.img)
			if res.Err != nil {
				t.Fatalf("Fetch: %v", res.Err)
			}
			if res.Source != tt.want {
				t.Errorf("Source %q, want %q", res.Source, tt.want)
			}
			if filepath.Base(res.Path) != tt.wantFile {
				t.Errorf("Path %q, want file %q", res.Path, tt.wantFile)
			}
			if _, err := os.Stat(res.Path); err != nil {
				t.Errorf("file not written: %v", err)
			}
			if tt.want == FromPlaceholder {
				if _, err := os.Stat(filepath.Join(f.Dir, tt.img.Filename)); !os.IsNotExist(err) {
					t.Errorf("partial download left at %s", tt.img.Filename)
				}
			}
		})
	}
}

func TestFetchAllKeepsOrderAndLimit(t *testing.T) {
	var inFlight, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	var images []Image
	for _, name := range []string{"one", "two", "three", "four", "five", "six"} {
		images = append(images, Image{URL: srv.URL + "/" + name, Filename: name + ".png"})
	}

	f := newTestFetcher(t)
	f.Workers = 2
	results, err := f.FetchAll(context.Background(), images)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(results) != len(images) {
		t.Fatalf("%d results, want %d", len(results), len(images))
	}
	for i, res := range results {
		if res.Image.Filename != images[i].Filename || res.Source != FromPrimary {
			t.Errorf("result %d: %+v", i, res)
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			t.Fatal(err)
		}
		if want := "/" + strings.TrimSuffix(images[i].Filename, ".png"); string(data) != want {
			t.Errorf("%s contains %q, want %q", res.Path, data, want)
		}
	}
	if p := atomic.LoadInt32(&peak); p > 2 {
		t.Errorf("%d downloads in flight, limit is 2", p)
	}
}

func TestFetchAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newTestFetcher(t)
	if _, err := f.FetchAll(ctx, DefaultManifest().Images); err == nil {
		t.Error("FetchAll with a cancelled context succeeded")
	}
}

func TestWritePlaceholderEscapesLabel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a&b.svg")
	if err := WritePlaceholder(path, "a&b.png"); err != nil {
		t.Fatalf("WritePlaceholder: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), ">a&amp;b</text>") {
		t.Errorf("label not escaped:\n%s", data)
	}
	if !strings.Contains(string(data), `fill="#87CEEB"`) {
		t.Errorf("background missing:\n%s", data)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte("images:\n  - url: http://example.com/a.png\n    fallback_url: http://example.com/b.png\n    filename: a.png\n"), 0644)
	m, err := LoadManifest(good)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Images) != 1 || m.Images[0].FallbackURL != "http://example.com/b.png" {
		t.Errorf("manifest %+v", m)
	}

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("images:\n  - url: http://example.com/a.png\n    filename: ../a.png\n"), 0644)
	if _, err := LoadManifest(bad); err == nil {
		t.Error("LoadManifest accepted a filename with a directory")
	}

	if _, err := LoadManifest(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("LoadManifest accepted a missing file")
	}
}

func TestPlaceholderPath(t *testing.T) {
	if got := PlaceholderPath("/img/ocean-crab.png"); got != "/img/ocean-crab.svg" {
		t.Errorf("PlaceholderPath = %q", got)
	}
}
