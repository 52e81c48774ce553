package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/tatianab/word-forest/internal/models"
	"github.com/tatianab/word-forest/internal/words"
)

const (
	HintPenalty        = 5
	TimeBonusPerSecond = 2
	LevelTimeStep      = 5  // seconds removed from the countdown per level
	MinLevelTime       = 10 // seconds
	ExtraWordsPerLevel = 2
	DefaultMaxLevel    = 5
	FinishDelay        = 3 * time.Second
)

// Player-facing messages.
const (
	MsgRevealed     = "Type this word to earn points!"
	MsgNoActiveWord = "Click on a tree or rock to find a hidden word first!"
	MsgTryAgain     = "Try again!"
	MsgTypeWord     = "Type the word before pressing enter."
	MsgFaded        = "The word faded. Click it again to take another look."
	MsgNoHints      = "No hints left!"
	MsgPaused       = "Paused."
)

// Rules applies actions to sessions. A Rules value holds only configuration
// and a random source; all session state lives in models.Session.
type Rules struct {
	Profiles models.Profiles
	Words    []string
	MaxLevel int
	Rand     *rand.Rand
	NewID    func() string
}

// NewRules returns rules over the given profiles and word pool. An empty pool
// is replaced by the built-in word list and a non-positive maxLevel by
// DefaultMaxLevel.
func NewRules(profiles models.Profiles, pool []string, maxLevel int, rng *rand.Rand) *Rules {
	if len(pool) == 0 {
		pool = words.Defaults()
	}
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Rules{
		Profiles: profiles,
		Words:    pool,
		MaxLevel: maxLevel,
		Rand:     rng,
		NewID:    uuid.NewString,
	}
}

// NewSession returns a session on the menu screen.
func (r *Rules) NewSession(d models.Difficulty) models.Session {
	if _, ok := r.Profiles[d]; !ok {
		d = models.Easy
	}
	return models.Session{
		Level:      1,
		MaxLevel:   r.MaxLevel,
		Difficulty: d,
		Profile:    r.Profiles[d],
		State:      models.StateMenu,
		Revealed:   models.NoTarget,
		Active:     models.NoTarget,
		HintTarget: models.NoTarget,
	}
}

// Apply returns the session that results from applying a to s, and the
// effects the caller must perform. s itself is not modified. Actions that
// are not valid in the current state leave the session unchanged apart from
// an advisory message.
func (r *Rules) Apply(s models.Session, a Action) (models.Session, []Effect) {
	s = s.Clone()
	var fx []Effect

	switch a := a.(type) {
	case StartGame:
		if s.State != models.StateMenu {
			break
		}
		fx = r.start(&s, a.Difficulty)
	case RevealWord:
		fx = r.reveal(&s, a.TargetID)
	case HideWord:
		fx = r.hide(&s, a.Seq)
	case SubmitAnswer:
		fx = r.submit(&s, a.Text)
	case UseHint:
		fx = r.hint(&s)
	case Tick:
		fx = r.tick(&s, a.Epoch)
	case NextLevel:
		fx = r.nextLevel(&s)
	case Pause:
		fx = r.pause(&s)
	case Resume:
		fx = r.resume(&s)
	case EndGame:
		switch s.State {
		case models.StatePlaying, models.StatePaused, models.StateLevelComplete:
			fx = r.end(&s, fmt.Sprintf("Game over. Final score: %d", s.Score))
		}
	case FinishGame:
		if s.State == models.StateLevelComplete && s.Level >= s.MaxLevel {
			fx = r.end(&s, fmt.Sprintf("You cleared every level! Final score: %d", s.Score))
		}
	case Restart:
		if s.State == models.StateMenu {
			break
		}
		d := s.Difficulty
		s = r.reset(s)
		fx = append(stopAll(), r.start(&s, d)...)
	case ReturnToMenu:
		if s.State == models.StateMenu {
			break
		}
		s = r.reset(s)
		fx = append(stopAll(), ShowScreen{State: models.StateMenu})
	}
	return s, fx
}

// reset returns a menu session for the same difficulty. The timer counters
// carry over so callbacks from the discarded session stay stale.
func (r *Rules) reset(s models.Session) models.Session {
	next := r.NewSession(s.Difficulty)
	next.TimerEpoch = s.TimerEpoch
	next.RevealSeq = s.RevealSeq
	return next
}

func (r *Rules) start(s *models.Session, d models.Difficulty) []Effect {
	profile, ok := r.Profiles[d]
	if !ok {
		d = models.Easy
		profile = r.Profiles[d]
	}

	s.ID = r.NewID()
	s.Difficulty = d
	s.Profile = profile
	s.Score = 0
	s.Level = 1
	s.MaxLevel = r.MaxLevel
	s.Hints = profile.Hints
	s.FinalScore = 0
	s.Message = ""
	s.TimeLeft = LevelTime(profile, 1)
	r.generateLevel(s)
	s.State = models.StatePlaying
	s.TimerEpoch++

	return []Effect{
		RenderScene{Targets: s.Targets},
		ShowScreen{State: models.StatePlaying},
		countdown(s.TimerEpoch),
	}
}

func (r *Rules) generateLevel(s *models.Session) {
	n := LevelWordCount(s.Profile, s.Level, len(r.Words))
	picked := Sample(r.Words, n, r.Rand)
	placements := Place(len(picked), r.Rand)

	s.Targets = make([]models.WordTarget, len(picked))
	for i, w := range picked {
		s.Targets[i] = models.WordTarget{ID: i, Word: w, Placement: placements[i]}
	}
	s.Revealed = models.NoTarget
	s.Active = models.NoTarget
	s.HintTarget = models.NoTarget
	s.HintText = ""
}

func (r *Rules) reveal(s *models.Session, id int) []Effect {
	if s.State != models.StatePlaying {
		return nil
	}
	t, ok := s.Target(id)
	if !ok || t.Found {
		return nil
	}

	if s.Revealed == id {
		s.Revealed = models.NoTarget
		s.Active = models.NoTarget
		s.Message = ""
		return []Effect{StopTimer{Kind: TimerHide}, Feedback{Kind: FeedbackHide}}
	}

	s.Revealed = id
	s.Active = id
	s.RevealSeq++
	s.Message = MsgRevealed
	return []Effect{
		Feedback{Kind: FeedbackReveal},
		hideTimer(s),
	}
}

func (r *Rules) hide(s *models.Session, seq int) []Effect {
	if s.State != models.StatePlaying || seq != s.RevealSeq || s.Revealed == models.NoTarget {
		return nil
	}
	s.Revealed = models.NoTarget
	s.Active = models.NoTarget
	s.Message = MsgFaded
	return []Effect{Feedback{Kind: FeedbackHide}}
}

func (r *Rules) submit(s *models.Session, text string) []Effect {
	if s.State != models.StatePlaying || s.Active == models.NoTarget {
		s.Message = MsgNoActiveWord
		return nil
	}
	answer := strings.ToLower(strings.TrimSpace(text))
	if answer == "" {
		s.Message = MsgTypeWord
		return nil
	}

	t, _ := s.Target(s.Active)
	if answer != strings.ToLower(t.Word) {
		s.Message = MsgTryAgain
		return []Effect{Feedback{Kind: FeedbackIncorrect}}
	}

	s.Score += s.Profile.PointsPerWord
	for i := range s.Targets {
		if s.Targets[i].ID == t.ID {
			s.Targets[i].Found = true
		}
	}
	if s.HintTarget == t.ID {
		s.HintTarget = models.NoTarget
		s.HintText = ""
	}
	s.Revealed = models.NoTarget
	s.Active = models.NoTarget
	s.Message = fmt.Sprintf("Correct! +%d points", s.Profile.PointsPerWord)

	fx := []Effect{StopTimer{Kind: TimerHide}, Feedback{Kind: FeedbackCorrect}}
	return append(fx, r.checkLevelComplete(s)...)
}

func (r *Rules) checkLevelComplete(s *models.Session) []Effect {
	if s.Remaining() > 0 {
		return nil
	}

	bonus := s.TimeLeft * TimeBonusPerSecond
	s.Score += bonus
	s.State = models.StateLevelComplete
	s.Message = fmt.Sprintf("Level %d complete! Time bonus +%d", s.Level, bonus)

	fx := []Effect{
		StopTimer{Kind: TimerCountdown},
		StopTimer{Kind: TimerHide},
		Feedback{Kind: FeedbackLevelUp},
		ShowScreen{State: models.StateLevelComplete},
	}
	if s.Level >= s.MaxLevel {
		s.Message += ". That was the final level!"
		fx = append(fx, StartTimer{Kind: TimerFinish, Interval: FinishDelay, Action: FinishGame{}})
	}
	return fx
}

func (r *Rules) hint(s *models.Session) []Effect {
	if s.State != models.StatePlaying {
		return nil
	}
	if s.Hints == 0 {
		s.HintText = MsgNoHints
		return nil
	}

	var remaining []models.WordTarget
	for _, t := range s.Targets {
		if !t.Found {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == 0 {
		return nil
	}

	t := remaining[r.Rand.Intn(len(remaining))]
	first, _ := utf8.DecodeRuneInString(t.Word)
	s.Hints--
	s.Score = max(s.Score-HintPenalty, 0)
	s.HintTarget = t.ID
	s.HintText = fmt.Sprintf("Hint: a word hidden by a %s starts with %q (-%d points)", t.Placement.Category, string(first), HintPenalty)
	return []Effect{Feedback{Kind: FeedbackHint}}
}

func (r *Rules) tick(s *models.Session, epoch int) []Effect {
	if s.State != models.StatePlaying || epoch != s.TimerEpoch {
		return nil
	}
	s.TimeLeft--
	if s.TimeLeft > 0 {
		return nil
	}
	s.TimeLeft = 0
	return r.end(s, fmt.Sprintf("Time's up! Final score: %d", s.Score))
}

func (r *Rules) nextLevel(s *models.Session) []Effect {
	if s.State != models.StateLevelComplete || s.Level >= s.MaxLevel {
		return nil
	}
	s.Level++
	s.TimeLeft = LevelTime(s.Profile, s.Level)
	r.generateLevel(s)
	s.State = models.StatePlaying
	s.Message = fmt.Sprintf("Level %d", s.Level)
	s.TimerEpoch++

	return []Effect{
		RenderScene{Targets: s.Targets},
		ShowScreen{State: models.StatePlaying},
		countdown(s.TimerEpoch),
	}
}

func (r *Rules) pause(s *models.Session) []Effect {
	if s.State != models.StatePlaying {
		return nil
	}
	s.State = models.StatePaused
	s.Message = MsgPaused
	return []Effect{
		StopTimer{Kind: TimerCountdown},
		StopTimer{Kind: TimerHide},
		ShowScreen{State: models.StatePaused},
	}
}

func (r *Rules) resume(s *models.Session) []Effect {
	if s.State != models.StatePaused {
		return nil
	}
	s.State = models.StatePlaying
	s.Message = ""
	s.TimerEpoch++

	fx := []Effect{ShowScreen{State: models.StatePlaying}, countdown(s.TimerEpoch)}
	if s.Revealed != models.NoTarget {
		s.RevealSeq++
		s.Message = MsgRevealed
		fx = append(fx, hideTimer(s))
	}
	return fx
}

func (r *Rules) end(s *models.Session, msg string) []Effect {
	s.State = models.StateGameOver
	s.FinalScore = s.Score
	s.Revealed = models.NoTarget
	s.Active = models.NoTarget
	s.Message = msg
	return append(stopAll(),
		Feedback{Kind: FeedbackGameOver},
		ShowScreen{State: models.StateGameOver},
	)
}

func countdown(epoch int) StartTimer {
	return StartTimer{Kind: TimerCountdown, Interval: time.Second, Repeat: true, Action: Tick{Epoch: epoch}}
}

func hideTimer(s *models.Session) StartTimer {
	return StartTimer{Kind: TimerHide, Interval: s.Profile.WordVisibility, Action: HideWord{Seq: s.RevealSeq}}
}

func stopAll() []Effect {
	return []Effect{
		StopTimer{Kind: TimerCountdown},
		StopTimer{Kind: TimerHide},
		StopTimer{Kind: TimerFinish},
	}
}
