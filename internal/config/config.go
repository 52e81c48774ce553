package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tatianab/word-forest/internal/models"
)

const (
	DefaultMaxLevel = 5
	MaxMaxLevel     = 20
	DefaultLogFile  = "word-forest.log"
)

// Config holds the application configuration.
type Config struct {
	WordsFile    string
	GeminiAPIKey string
	GeminiModel  string
	WordTheme    string
	ProfilesFile string
	MaxLevel     int
	Difficulty   models.Difficulty
	LogFile      string
	LogLevel     string
}

// LoadConfig loads the configuration from a .env file, if present, and the
// environment. Variables already set in the environment win over .env.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		WordsFile:    os.Getenv("WORDS_FILE"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		WordTheme:    os.Getenv("WORD_THEME"),
		ProfilesFile: os.Getenv("PROFILES_FILE"),
		MaxLevel:     DefaultMaxLevel,
		Difficulty:   models.Easy,
		LogFile:      getEnv("LOG_FILE", DefaultLogFile),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if v := strings.TrimSpace(os.Getenv("MAX_LEVEL")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MAX_LEVEL must be a number: %w", err)
		}
		cfg.MaxLevel = n
	}
	if v := os.Getenv("DIFFICULTY"); v != "" {
		if err := cfg.SetDifficulty(v); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetDifficulty sets the preselected difficulty by name.
func (c *Config) SetDifficulty(name string) error {
	d, ok := models.ParseDifficulty(strings.ToLower(strings.TrimSpace(name)))
	if !ok {
		return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", name)
	}
	c.Difficulty = d
	return nil
}

// Validate reports configuration values the game cannot run with.
func (c *Config) Validate() error {
	if c.MaxLevel < 1 || c.MaxLevel > MaxMaxLevel {
		return fmt.Errorf("MAX_LEVEL must be between 1 and %d, got %d", MaxMaxLevel, c.MaxLevel)
	}
	return nil
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
