package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/tatianab/word-forest/internal/engine"
	"github.com/tatianab/word-forest/internal/game"
	"github.com/tatianab/word-forest/internal/logging"
	"github.com/tatianab/word-forest/internal/models"
	"github.com/tatianab/word-forest/internal/words"
)

const maxTurns = 500

func main() {
	difficulty := flag.String("difficulty", "easy", "difficulty to play")
	levels := flag.Int("levels", 3, "number of levels")
	seed := flag.Int64("seed", 1, "random seed for the game and the player")
	mistakes := flag.Float64("mistakes", 0.2, "chance the player mistypes a word")
	think := flag.Duration("think", 700*time.Millisecond, "time the player takes per action")
	theme := flag.String("theme", "", "generate words for this theme with Gemini")
	flag.Parse()

	_ = godotenv.Load()
	log := logging.Console(os.Getenv("LOG_LEVEL"))
	ctx := context.Background()

	d, ok := models.ParseDifficulty(*difficulty)
	if !ok {
		fmt.Printf("Unknown difficulty %q\n", *difficulty)
		os.Exit(1)
	}

	var src words.Source
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && *theme != "" {
		eng, err := engine.NewEngine(ctx, key, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			fmt.Printf("Failed to create engine: %v\n", err)
			os.Exit(1)
		}
		defer eng.Close()
		src = engine.ThemeSource{Engine: eng, Theme: *theme}
	}
	pool := words.LoadOrDefault(ctx, src, log)

	fmt.Printf("--- Simulating a %s game over %d levels with %d words ---\n\n", d, *levels, len(pool))

	rng := rand.New(rand.NewSource(*seed))
	clock := game.NewManualClock()
	rules := game.NewRules(models.DefaultProfiles(), pool, *levels, rand.New(rand.NewSource(*seed)))
	ctrl := game.NewController(rules, d, clock, log)
	defer ctrl.Close()

	ctrl.SetPresenter(game.PresenterFunc(func(s models.Session, fx []game.Effect) {
		for _, e := range fx {
			if f, ok := e.(game.Feedback); ok {
				fmt.Printf("[%5.1fs] %s: %s\n", clock.Now().Seconds(), f.Kind, s.Message)
			}
		}
	}))

	p := &player{ctrl: ctrl, clock: clock, rng: rng, mistakes: *mistakes, think: *think}
	p.do("start", game.StartGame{Difficulty: d})

	for turn := 1; turn <= maxTurns; turn++ {
		s := ctrl.Snapshot()
		switch s.State {
		case models.StatePlaying:
			p.play(s)
		case models.StateLevelComplete:
			if s.Level < s.MaxLevel {
				p.do("next level", game.NextLevel{})
			} else {
				clock.Advance(game.FinishDelay)
			}
		case models.StateGameOver:
			fmt.Printf("\n--- Game Over after %d turns ---\n", turn)
			fmt.Printf("Level reached: %d/%d\n", s.Level, s.MaxLevel)
			fmt.Printf("Final score: %d\n", s.FinalScore)
			fmt.Printf("Virtual time: %s\n", clock.Now())
			return
		default:
			fmt.Printf("Unexpected state %s\n", s.State)
			os.Exit(1)
		}
	}
	fmt.Println("\n--- Simulation stopped: turn limit reached ---")
}

// player is a scripted player that looks behind each element in turn and
// sometimes mistypes what it saw.
type player struct {
	ctrl     *game.Controller
	clock    *game.ManualClock
	rng      *rand.Rand
	mistakes float64
	think    time.Duration
}

func (p *player) do(label string, a game.Action) models.Session {
	s, _ := p.ctrl.Dispatch(a)
	fmt.Printf("[%5.1fs] %-18s level=%d score=%d time=%d hints=%d %s\n",
		p.clock.Now().Seconds(), label, s.Level, s.Score, s.TimeLeft, s.Hints, s.Message)
	return s
}

func (p *player) play(s models.Session) {
	if s.Hints > 0 && p.rng.Float64() < 0.1 {
		s = p.do("hint", game.UseHint{})
		fmt.Printf("         %s\n", s.HintText)
	}

	var target models.WordTarget
	for _, t := range s.Targets {
		if !t.Found {
			target = t
			break
		}
	}

	if s.Revealed != target.ID {
		s = p.do(fmt.Sprintf("look behind %s", target.Placement.Category), game.RevealWord{TargetID: target.ID})
	}
	p.clock.Advance(p.think)

	answer := target.Word
	if p.rng.Float64() < p.mistakes {
		answer = mistype(answer, p.rng)
	}
	p.do(fmt.Sprintf("type %q", answer), game.SubmitAnswer{Text: answer})
	p.clock.Advance(p.think)
}

// mistype swaps two neighbouring letters, or doubles the only one.
func mistype(w string, rng *rand.Rand) string {
	b := []byte(w)
	if len(b) < 2 {
		return w + w
	}
	i := rng.Intn(len(b) - 1)
	if b[i] == b[i+1] {
		return w + string(b[i])
	}
	b[i], b[i+1] = b[i+1], b[i]
	return string(b)
}
