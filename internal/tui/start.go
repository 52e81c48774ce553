package tui

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tatianab/word-forest/internal/config"
	"github.com/tatianab/word-forest/internal/engine"
	"github.com/tatianab/word-forest/internal/logging"
	"github.com/tatianab/word-forest/internal/models"
	"github.com/tatianab/word-forest/internal/words"
)

// generatedWords is how many words are requested from the model.
const generatedWords = 40

// Start loads the configuration from the environment and plays the game.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return StartWith(context.Background(), cfg)
}

// StartWith plays the game with the given configuration.
func StartWith(ctx context.Context, cfg *config.Config) error {
	log, closer, err := logging.File(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	profiles, err := models.LoadProfiles(cfg.ProfilesFile)
	if err != nil {
		return fmt.Errorf("loading difficulty profiles: %w", err)
	}

	src, cleanup := WordSource(ctx, cfg, log)
	defer cleanup()

	log.Info().
		Str("difficulty", string(cfg.Difficulty)).
		Int("max_level", cfg.MaxLevel).
		Msg("starting word forest")

	return Run(Options{
		Source:     src,
		Profiles:   profiles,
		MaxLevel:   cfg.MaxLevel,
		Difficulty: cfg.Difficulty,
		Log:        log,
	})
}

// WordSource builds the word source chain for cfg: the words file if one is
// set, then Gemini if an API key is set. The returned function releases the
// Gemini client. A nil source means the built-in list.
func WordSource(ctx context.Context, cfg *config.Config, log zerolog.Logger) (words.Source, func()) {
	var chain words.Chain
	cleanup := func() {}

	if cfg.WordsFile != "" {
		chain = append(chain, words.File{Path: cfg.WordsFile})
	}
	if cfg.GeminiAPIKey != "" {
		eng, err := engine.NewEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Warn().Err(err).Msg("word generation disabled")
		} else {
			chain = append(chain, engine.ThemeSource{Engine: eng, Theme: cfg.WordTheme, Count: generatedWords})
			cleanup = eng.Close
		}
	}

	if len(chain) == 0 {
		return nil, cleanup
	}
	return chain, cleanup
}
