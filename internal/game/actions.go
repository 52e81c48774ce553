package game

import (
	"time"

	"github.com/tatianab/word-forest/internal/models"
)

// Action is a player input or timer event applied to a session.
type Action interface {
	action()
}

type StartGame struct{ Difficulty models.Difficulty }
type RevealWord struct{ TargetID int }
type SubmitAnswer struct{ Text string }
type UseHint struct{}
type NextLevel struct{}
type Pause struct{}
type Resume struct{}
type EndGame struct{}
type Restart struct{}
type ReturnToMenu struct{}

// Tick is one second of the level countdown. Epoch identifies the countdown
// that produced it.
type Tick struct{ Epoch int }

// HideWord ends the visibility window of the reveal numbered Seq.
type HideWord struct{ Seq int }

// FinishGame moves a completed final level to the game over screen.
type FinishGame struct{}

func (StartGame) action()    {}
func (RevealWord) action()   {}
func (SubmitAnswer) action() {}
func (UseHint) action()      {}
func (NextLevel) action()    {}
func (Pause) action()        {}
func (Resume) action()       {}
func (EndGame) action()      {}
func (Restart) action()      {}
func (ReturnToMenu) action() {}
func (Tick) action()         {}
func (HideWord) action()     {}
func (FinishGame) action()   {}

// Effect is a side effect requested by Apply. Effects are returned in the
// order they should be performed.
type Effect interface {
	effect()
}

// ShowScreen asks the presentation layer to show the screen for State and
// hide every other one.
type ShowScreen struct{ State models.GameState }

// FeedbackKind names a discrete feedback event.
type FeedbackKind string

const (
	FeedbackCorrect   FeedbackKind = "correct"
	FeedbackIncorrect FeedbackKind = "incorrect"
	FeedbackReveal    FeedbackKind = "reveal"
	FeedbackHide      FeedbackKind = "hide"
	FeedbackHint      FeedbackKind = "hint"
	FeedbackLevelUp   FeedbackKind = "levelup"
	FeedbackGameOver  FeedbackKind = "gameover"
)

type Feedback struct{ Kind FeedbackKind }

// RenderScene hands a freshly generated level to the scene renderer.
type RenderScene struct{ Targets []models.WordTarget }

// TimerKind identifies one of the session's timers. At most one timer of
// each kind runs at a time.
type TimerKind int

const (
	TimerCountdown TimerKind = iota
	TimerHide
	TimerFinish
)

func (k TimerKind) String() string {
	switch k {
	case TimerCountdown:
		return "countdown"
	case TimerHide:
		return "hide"
	case TimerFinish:
		return "finish"
	}
	return "unknown"
}

// StartTimer replaces the timer of the same kind with one that applies
// Action after Interval, and again every Interval when Repeat is set.
type StartTimer struct {
	Kind     TimerKind
	Interval time.Duration
	Repeat   bool
	Action   Action
}

// StopTimer cancels the timer of the given kind, if any.
type StopTimer struct{ Kind TimerKind }

func (ShowScreen) effect()  {}
func (Feedback) effect()    {}
func (RenderScene) effect() {}
func (StartTimer) effect()  {}
func (StopTimer) effect()   {}
