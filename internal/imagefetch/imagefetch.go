// Package imagefetch downloads the game's picture assets. Each image has a
// primary and an optional fallback URL; when both fail a labelled SVG
// placeholder is written instead so the game always has something to show.
package imagefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const DefaultWorkers = 5

// Image is one manifest entry.
type Image struct {
	URL         string `yaml:"url"`
	FallbackURL string `yaml:"fallback_url,omitempty"`
	Filename    string `yaml:"filename"`
}

// Manifest lists the images to fetch.
type Manifest struct {
	Images []Image `yaml:"images"`
}

// LoadManifest reads a YAML manifest.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	for i, img := range m.Images {
		if img.URL == "" || img.Filename == "" {
			return Manifest{}, fmt.Errorf("manifest %s: image %d needs url and filename", path, i)
		}
		if filepath.Base(img.Filename) != img.Filename {
			return Manifest{}, fmt.Errorf("manifest %s: filename %q must not contain a directory", path, img.Filename)
		}
	}
	return m, nil
}

// Source says where a fetched image came from.
type Source string

const (
	FromPrimary     Source = "primary"
	FromFallback    Source = "fallback"
	FromPlaceholder Source = "placeholder"
)

// Result is the outcome for one image. Path is the file written; Err is set
// only when not even the placeholder could be written.
type Result struct {
	Image  Image
	Source Source
	Path   string
	Err    error
}

// Fetcher downloads images into Dir.
type Fetcher struct {
	Client  *http.Client
	Dir     string
	Workers int
	Log     zerolog.Logger
}

// NewFetcher returns a fetcher writing into dir.
func NewFetcher(dir string, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		Client:  &http.Client{Timeout: 30 * time.Second},
		Dir:     dir,
		Workers: DefaultWorkers,
		Log:     log,
	}
}

// FetchAll fetches every image, at most f.Workers at a time. Results are in
// manifest order. The only error returned is the context's.
func (f *Fetcher) FetchAll(ctx context.Context, images []Image) ([]Result, error) {
	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return nil, err
	}

	results := make([]Result, len(images))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.Workers, 1))
	for i, img := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = f.Fetch(ctx, img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Fetch tries the primary URL, then the fallback URL, then writes a
// placeholder.
func (f *Fetcher) Fetch(ctx context.Context, img Image) Result {
	path := filepath.Join(f.Dir, img.Filename)
	log := f.Log.With().Str("file", img.Filename).Logger()

	err := f.download(ctx, img.URL, path)
	if err == nil {
		log.Info().Str("url", img.URL).Msg("downloaded")
		return Result{Image: img, Source: FromPrimary, Path: path}
	}
	log.Warn().Err(err).Str("url", img.URL).Msg("primary source failed")

	if img.FallbackURL != "" {
		err = f.download(ctx, img.FallbackURL, path)
		if err == nil {
			log.Info().Str("url", img.FallbackURL).Msg("downloaded from fallback")
			return Result{Image: img, Source: FromFallback, Path: path}
		}
		log.Warn().Err(err).Str("url", img.FallbackURL).Msg("fallback source failed")
	}

	placeholder := PlaceholderPath(path)
	if err := WritePlaceholder(placeholder, img.Filename); err != nil {
		log.Error().Err(err).Msg("could not write placeholder")
		return Result{Image: img, Source: FromPlaceholder, Path: placeholder, Err: err}
	}
	log.Info().Str("path", placeholder).Msg("wrote placeholder")
	return Result{Image: img, Source: FromPlaceholder, Path: placeholder}
}

// download writes the body of a 200 response for url to path. Nothing is
// left at path when it fails.
func (f *Fetcher) download(ctx context.Context, url, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var placeholderTmpl = template.Must(template.New("placeholder").Parse(`<svg width="300" height="300" xmlns="http://www.w3.org/2000/svg">
  <rect width="100%" height="100%" fill="#87CEEB" />
  <text x="150" y="150" font-family="Arial" font-size="24" fill="black" text-anchor="middle" alignment-baseline="middle">{{.Label | html}}</text>
</svg>
`))

// PlaceholderPath returns the SVG path used in place of path.
func PlaceholderPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".svg"
}

// WritePlaceholder writes a sky-blue square labelled with the image name.
func WritePlaceholder(path, filename string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	label := strings.TrimSuffix(filename, filepath.Ext(filename))
	if err := placeholderTmpl.Execute(file, struct{ Label string }{label}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// DefaultManifest lists the card and ocean pictures used by the games.
func DefaultManifest() Manifest {
	const cards = "https://raw.githubusercontent.com/hayeah/playing-cards-assets/master/png/"
	return Manifest{Images: []Image{
		{URL: cards + "back.png", Filename: "card-back.png"},
		{URL: cards + "ace_of_spades.png", Filename: "card-spades-ace.png"},
		{URL: cards + "ace_of_hearts.png", Filename: "card-hearts-ace.png"},
		{URL: cards + "ace_of_diamonds.png", Filename: "card-diamonds-ace.png"},
		{URL: cards + "ace_of_clubs.png", Filename: "card-clubs-ace.png"},
		{URL: "https://openclipart.org/download/282614/1495146125.svg", FallbackURL: "https://freesvg.org/img/1526017993.png", Filename: "ocean-shark.png"},
		{URL: "https://openclipart.org/download/226095/Cartoon-Octopus.svg", FallbackURL: "https://freesvg.org/img/Octopus-by-Rones.png", Filename: "ocean-octopus.png"},
		{URL: "https://openclipart.org/download/285200/1502384081.svg", FallbackURL: "https://freesvg.org/img/1534454216.png", Filename: "ocean-turtle.png"},
		{URL: "https://openclipart.org/download/169312/jellyfish.svg", FallbackURL: "https://freesvg.org/img/1538063579.png", Filename: "ocean-jellyfish.png"},
		{URL: "https://openclipart.org/download/304307/1526017993.svg", FallbackURL: "https://freesvg.org/img/clownfish.png", Filename: "ocean-clownfish.png"},
		{URL: "https://openclipart.org/download/325242/dolphin.svg", FallbackURL: "https://freesvg.org/img/dolphin-silhouette.png", Filename: "ocean-dolphin.png"},
		{URL: "https://openclipart.org/download/279910/1494961085.svg", FallbackURL: "https://freesvg.org/img/1539016128.png", Filename: "ocean-whale.png"},
		{URL: "https://openclipart.org/download/223647/Crab-001.svg", FallbackURL: "https://freesvg.org/img/Crab-by-Rones.png", Filename: "ocean-crab.png"},
	}}
}
