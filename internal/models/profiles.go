package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Profiles maps each difficulty to its profile.
type Profiles map[Difficulty]DifficultyProfile

// DefaultProfiles returns the built-in difficulty table.
func DefaultProfiles() Profiles {
	return Profiles{
		Easy: {
			TimeLimit:      90,
			WordCount:      5,
			WordVisibility: 3000 * time.Millisecond,
			Hints:          3,
			PointsPerWord:  5,
		},
		Medium: {
			TimeLimit:      60,
			WordCount:      7,
			WordVisibility: 2000 * time.Millisecond,
			Hints:          2,
			PointsPerWord:  10,
		},
		Hard: {
			TimeLimit:      45,
			WordCount:      10,
			WordVisibility: 1000 * time.Millisecond,
			Hints:          1,
			PointsPerWord:  15,
		},
	}
}

// profileOverride is one entry of a profiles file. Unset fields keep the
// default value.
type profileOverride struct {
	TimeLimit        *int `yaml:"time_limit"`
	WordCount        *int `yaml:"word_count"`
	WordVisibilityMs *int `yaml:"word_visibility_ms"`
	Hints            *int `yaml:"hints"`
	PointsPerWord    *int `yaml:"points_per_word"`
}

// LoadProfiles returns the default profiles overridden by the YAML file at
// path. An empty path or a missing file yields the defaults.
func LoadProfiles(path string) (Profiles, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return profiles, nil
	}
	if err != nil {
		return nil, err
	}
	if err := profiles.Merge(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// Merge applies the YAML overrides in data to p.
func (p Profiles) Merge(data []byte) error {
	var overrides map[string]profileOverride
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse profiles: %w", err)
	}

	for name, o := range overrides {
		d, ok := ParseDifficulty(name)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", name)
		}
		profile := p[d]
		if o.TimeLimit != nil {
			profile.TimeLimit = *o.TimeLimit
		}
		if o.WordCount != nil {
			profile.WordCount = *o.WordCount
		}
		if o.WordVisibilityMs != nil {
			profile.WordVisibility = time.Duration(*o.WordVisibilityMs) * time.Millisecond
		}
		if o.Hints != nil {
			profile.Hints = *o.Hints
		}
		if o.PointsPerWord != nil {
			profile.PointsPerWord = *o.PointsPerWord
		}
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		p[d] = profile
	}
	return nil
}

// Validate reports whether the profile can drive a game.
func (p DifficultyProfile) Validate() error {
	switch {
	case p.TimeLimit <= 0:
		return fmt.Errorf("time_limit must be positive, got %d", p.TimeLimit)
	case p.WordCount <= 0:
		return fmt.Errorf("word_count must be positive, got %d", p.WordCount)
	case p.WordVisibility <= 0:
		return fmt.Errorf("word_visibility_ms must be positive, got %v", p.WordVisibility)
	case p.Hints < 0:
		return fmt.Errorf("hints must not be negative, got %d", p.Hints)
	case p.PointsPerWord <= 0:
		return fmt.Errorf("points_per_word must be positive, got %d", p.PointsPerWord)
	}
	return nil
}
