package game

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/tatianab/word-forest/internal/models"
)

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{"a", "b", "c", "d", "e"}
	orig := append([]string(nil), pool...)

	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{-1, 0},
		{3, 3},
		{5, 5},
		{9, 5},
	}
	for _, tt := range tests {
		got := Sample(pool, tt.n, rng)
		if len(got) != tt.want {
			t.Errorf("Sample(n=%d) returned %d words, want %d", tt.n, len(got), tt.want)
		}
		seen := make(map[string]bool)
		for _, w := range got {
			if seen[w] {
				t.Errorf("Sample(n=%d) repeated %q", tt.n, w)
			}
			seen[w] = true
		}
	}
	if !reflect.DeepEqual(pool, orig) {
		t.Errorf("Sample modified its pool: %v", pool)
	}
}

func TestPlaceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	counts := make(map[models.Category]int)
	for _, p := range Place(500, rng) {
		b, ok := categoryBounds[p.Category]
		if !ok {
			t.Fatalf("unknown category %q", p.Category)
		}
		if p.X < b.minX || p.X >= b.maxX || p.Y < b.minY || p.Y >= b.maxY {
			t.Errorf("%s placed at (%d,%d), outside %+v", p.Category, p.X, p.Y, b)
		}
		counts[p.Category]++
	}
	for _, c := range categories {
		if counts[c] == 0 {
			t.Errorf("no %s placed in 500 draws", c)
		}
	}
}

func TestLevelWordCount(t *testing.T) {
	easy := models.DefaultProfiles()[models.Easy]
	tests := []struct {
		level, available, want int
	}{
		{1, 12, 5},
		{2, 12, 7},
		{4, 12, 11},
		{5, 12, 12},
		{1, 3, 3},
	}
	for _, tt := range tests {
		if got := LevelWordCount(easy, tt.level, tt.available); got != tt.want {
			t.Errorf("LevelWordCount(level %d, %d available) = %d, want %d", tt.level, tt.available, got, tt.want)
		}
	}
}

func TestLevelTime(t *testing.T) {
	hard := models.DefaultProfiles()[models.Hard]
	tests := []struct {
		name    string
		profile models.DifficultyProfile
		level   int
		want    int
	}{
		{"first level", hard, 1, 45},
		{"fifth level", hard, 5, 25},
		{"at the floor", hard, 8, 10},
		{"clamped", hard, 12, MinLevelTime},
		{"short profile", models.DifficultyProfile{TimeLimit: 6}, 3, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelTime(tt.profile, tt.level); got != tt.want {
				t.Errorf("LevelTime = %d, want %d", got, tt.want)
			}
		})
	}
}
