package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestProfilesMerge(t *testing.T) {
	profiles := DefaultProfiles()
	data := []byte(`
hard:
  time_limit: 30
  word_visibility_ms: 750
easy:
  hints: 0
`)
	if err := profiles.Merge(data); err != nil {
		t.Fatalf("Failed to merge profiles: %v", err)
	}

	hard := profiles[Hard]
	if hard.TimeLimit != 30 {
		t.Errorf("Expected hard time limit 30, got %d", hard.TimeLimit)
	}
	if hard.WordVisibility != 750*time.Millisecond {
		t.Errorf("Expected hard visibility 750ms, got %v", hard.WordVisibility)
	}
	if hard.WordCount != 10 {
		t.Errorf("Expected hard word count to keep default 10, got %d", hard.WordCount)
	}
	if profiles[Easy].Hints != 0 {
		t.Errorf("Expected easy hints 0, got %d", profiles[Easy].Hints)
	}
	if profiles[Medium] != DefaultProfiles()[Medium] {
		t.Errorf("Expected medium profile untouched, got %+v", profiles[Medium])
	}
}

func TestProfilesMergeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown difficulty", "nightmare:\n  hints: 1\n"},
		{"zero time limit", "easy:\n  time_limit: 0\n"},
		{"negative hints", "medium:\n  hints: -1\n"},
		{"zero points", "hard:\n  points_per_word: 0\n"},
		{"not yaml", "easy: [1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profiles := DefaultProfiles()
			if err := profiles.Merge([]byte(tt.data)); err == nil {
				t.Errorf("Expected an error for %q", tt.data)
			}
		})
	}
}

func TestLoadProfilesMissingFile(t *testing.T) {
	profiles, err := LoadProfiles(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if profiles[Easy] != DefaultProfiles()[Easy] {
		t.Errorf("Expected defaults, got %+v", profiles[Easy])
	}
}

func TestLoadProfilesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte("easy:\n  points_per_word: 8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if profiles[Easy].PointsPerWord != 8 {
		t.Errorf("Expected 8 points per word, got %d", profiles[Easy].PointsPerWord)
	}
}

func TestSessionCloneAndRemaining(t *testing.T) {
	s := Session{Targets: []WordTarget{{ID: 0, Word: "cat"}, {ID: 1, Word: "dog", Found: true}}}
	c := s.Clone()
	c.Targets[0].Found = true

	if s.Targets[0].Found {
		t.Error("Clone shares targets with the original")
	}
	if got := s.Remaining(); got != 1 {
		t.Errorf("Expected 1 remaining, got %d", got)
	}
	if got := c.Remaining(); got != 0 {
		t.Errorf("Expected 0 remaining on clone, got %d", got)
	}
	if _, ok := s.Target(7); ok {
		t.Error("Expected no target with ID 7")
	}
}

func TestParseDifficulty(t *testing.T) {
	if d, ok := ParseDifficulty("medium"); !ok || d != Medium {
		t.Errorf("ParseDifficulty(medium) = %q, %v", d, ok)
	}
	if _, ok := ParseDifficulty("Medium"); ok {
		t.Error("ParseDifficulty should be case-sensitive")
	}
}
