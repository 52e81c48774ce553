package models

import "time"

// Difficulty selects a DifficultyProfile.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the difficulties in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty returns the difficulty named by s, and false if s names none.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, d := range Difficulties {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

// GameState is the screen the session is on.
type GameState string

const (
	StateMenu          GameState = "menu"
	StatePlaying       GameState = "playing"
	StatePaused        GameState = "paused"
	StateGameOver      GameState = "gameover"
	StateLevelComplete GameState = "levelcomplete"
)

// DifficultyProfile is the fixed configuration for one difficulty.
type DifficultyProfile struct {
	TimeLimit      int           `yaml:"time_limit"` // seconds for level 1
	WordCount      int           `yaml:"word_count"` // words in level 1
	WordVisibility time.Duration `yaml:"-"`
	Hints          int           `yaml:"hints"`
	PointsPerWord  int           `yaml:"points_per_word"`
}

// Category is the kind of scene element hiding a word.
type Category string

const (
	Tree   Category = "tree"
	Rock   Category = "rock"
	Animal Category = "animal"
)

// Placement locates a word-bearing element in the scene. X and Y are
// percentages of the scene width and height.
type Placement struct {
	Category Category
	X        int
	Y        int
}

// WordTarget is a word hidden in the scene for the current level.
type WordTarget struct {
	ID        int
	Word      string
	Found     bool
	Placement Placement
}

// NoTarget marks the absence of a revealed or active target.
const NoTarget = -1

// Session is the state of one play session.
type Session struct {
	ID         string
	Score      int
	Level      int
	MaxLevel   int
	TimeLeft   int
	Hints      int
	Difficulty Difficulty
	Profile    DifficultyProfile
	State      GameState
	Targets    []WordTarget

	Revealed   int // target whose word is visible, or NoTarget
	Active     int // target the next answer is checked against, or NoTarget
	RevealSeq  int
	TimerEpoch int

	FinalScore int
	Message    string
	HintText   string
	HintTarget int
}

// Remaining returns the number of targets not yet found.
func (s *Session) Remaining() int {
	n := 0
	for _, t := range s.Targets {
		if !t.Found {
			n++
		}
	}
	return n
}

// Target returns the target with the given ID.
func (s *Session) Target(id int) (WordTarget, bool) {
	for _, t := range s.Targets {
		if t.ID == id {
			return t, true
		}
	}
	return WordTarget{}, false
}

// Clone returns a copy of s that shares no memory with it.
func (s Session) Clone() Session {
	if s.Targets != nil {
		targets := make([]WordTarget, len(s.Targets))
		copy(targets, s.Targets)
		s.Targets = targets
	}
	return s
}
