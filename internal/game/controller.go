package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tatianab/word-forest/internal/models"
)

// Scheduler runs callbacks later. The returned stop function cancels the
// callback; it is safe to call more than once.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) (stop func())
	EveryFunc(d time.Duration, f func()) (stop func())
}

// Presenter receives the outcome of actions fired by the controller's own
// timers. It is never called with the controller's lock held.
type Presenter interface {
	Present(s models.Session, fx []Effect)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(s models.Session, fx []Effect)

func (f PresenterFunc) Present(s models.Session, fx []Effect) { f(s, fx) }

// Controller owns one session and serializes every change to it. Timer
// effects are carried out on the scheduler; all other effects are returned
// to the caller of Dispatch, or handed to the presenter when a timer fired
// the action.
type Controller struct {
	mu        sync.Mutex
	rules     *Rules
	session   models.Session
	sched     Scheduler
	timers    map[TimerKind]func()
	presenter Presenter
	log       zerolog.Logger
}

// NewController returns a controller on the menu screen with d preselected.
func NewController(rules *Rules, d models.Difficulty, sched Scheduler, log zerolog.Logger) *Controller {
	return &Controller{
		rules:   rules,
		session: rules.NewSession(d),
		sched:   sched,
		timers:  make(map[TimerKind]func()),
		log:     log,
	}
}

// SetPresenter sets the receiver of timer-driven updates.
func (c *Controller) SetPresenter(p Presenter) {
	c.mu.Lock()
	c.presenter = p
	c.mu.Unlock()
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Clone()
}

// Dispatch applies a to the session and returns the new session along with
// the effects of the action. Timer effects have already been performed.
func (c *Controller) Dispatch(a Action) (models.Session, []Effect) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.session
	next, fx := c.rules.Apply(prev, a)
	c.session = next

	if e := c.log.Debug(); e.Enabled() {
		e.Str("session", next.ID).Str("action", fmt.Sprintf("%T", a)).Int("effects", len(fx)).Msg("action applied")
	}
	if prev.State != next.State {
		c.log.Info().
			Str("session", next.ID).
			Str("from", string(prev.State)).
			Str("to", string(next.State)).
			Int("level", next.Level).
			Int("score", next.Score).
			Int("time_left", next.TimeLeft).
			Msg("state changed")
	}

	for _, e := range fx {
		switch e := e.(type) {
		case StartTimer:
			c.startTimerLocked(e)
		case StopTimer:
			c.stopTimerLocked(e.Kind)
		}
	}
	return next.Clone(), fx
}

// Close stops every timer. The session keeps its last state.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for kind := range c.timers {
		c.stopTimerLocked(kind)
	}
}

// Running reports whether a timer of the given kind is scheduled.
func (c *Controller) Running(kind TimerKind) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.timers[kind]
	return ok
}

func (c *Controller) startTimerLocked(t StartTimer) {
	c.stopTimerLocked(t.Kind)
	fire := func() { c.fire(t.Action) }
	if t.Repeat {
		c.timers[t.Kind] = c.sched.EveryFunc(t.Interval, fire)
	} else {
		c.timers[t.Kind] = c.sched.AfterFunc(t.Interval, fire)
	}
	c.log.Debug().Stringer("timer", t.Kind).Dur("interval", t.Interval).Msg("timer started")
}

func (c *Controller) stopTimerLocked(kind TimerKind) {
	stop, ok := c.timers[kind]
	if !ok {
		return
	}
	stop()
	delete(c.timers, kind)
	c.log.Debug().Stringer("timer", kind).Msg("timer stopped")
}

func (c *Controller) fire(a Action) {
	s, fx := c.Dispatch(a)

	c.mu.Lock()
	p := c.presenter
	c.mu.Unlock()
	if p != nil {
		p.Present(s, fx)
	}
}
