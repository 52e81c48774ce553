package game

import (
	"math/rand"

	"github.com/tatianab/word-forest/internal/models"
)

// Sample returns min(n, len(pool)) words drawn from pool without
// replacement. pool is not modified.
func Sample(pool []string, n int, rng *rand.Rand) []string {
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return nil
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// bounds is a half-open percentage rectangle [minX,maxX) x [minY,maxY).
type bounds struct {
	minX, maxX int
	minY, maxY int
}

// Trees grow anywhere in the upper part of the scene, rocks sit lower down.
var categoryBounds = map[models.Category]bounds{
	models.Tree:   {5, 75, 5, 65},
	models.Rock:   {5, 75, 30, 90},
	models.Animal: {5, 75, 15, 80},
}

var categories = []models.Category{models.Tree, models.Rock, models.Animal}

// Place returns n uniformly random placements.
func Place(n int, rng *rand.Rand) []models.Placement {
	out := make([]models.Placement, 0, n)
	for i := 0; i < n; i++ {
		c := categories[rng.Intn(len(categories))]
		b := categoryBounds[c]
		out = append(out, models.Placement{
			Category: c,
			X:        b.minX + rng.Intn(b.maxX-b.minX),
			Y:        b.minY + rng.Intn(b.maxY-b.minY),
		})
	}
	return out
}

// LevelWordCount is the number of targets in the given level.
func LevelWordCount(profile models.DifficultyProfile, level, available int) int {
	n := profile.WordCount + (level-1)*ExtraWordsPerLevel
	if n > available {
		n = available
	}
	return n
}

// LevelTime is the countdown for the given level. Each level is
// LevelTimeStep seconds shorter than the previous one, but never shorter
// than MinLevelTime or the profile's own time limit, whichever is smaller.
func LevelTime(profile models.DifficultyProfile, level int) int {
	floor := min(MinLevelTime, profile.TimeLimit)
	return max(profile.TimeLimit-(level-1)*LevelTimeStep, floor)
}
