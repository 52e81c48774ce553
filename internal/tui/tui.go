package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/tatianab/word-forest/internal/game"
	"github.com/tatianab/word-forest/internal/models"
	"github.com/tatianab/word-forest/internal/words"
)

const (
	sidebarWidth = 32
	loadTimeout  = 45 * time.Second

	// The forest's first interior cell is below the header line and inside
	// the box border.
	sceneTop  = 2
	sceneLeft = 1
)

// Options configure a game UI.
type Options struct {
	Source     words.Source
	Profiles   models.Profiles
	MaxLevel   int
	Difficulty models.Difficulty
	Scheduler  game.Scheduler
	Log        zerolog.Logger
}

type wordsLoadedMsg struct {
	words []string
}

// presentMsg carries the effects of an action fired by a controller timer.
type presentMsg struct {
	fx []game.Effect
}

// programSender forwards timer-driven updates into the running program.
type programSender struct {
	mu sync.Mutex
	p  *tea.Program
}

func (s *programSender) set(p *tea.Program) {
	s.mu.Lock()
	s.p = p
	s.mu.Unlock()
}

func (s *programSender) Send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

type model struct {
	opts     Options
	keys     KeyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	sender   *programSender
	ctrl     *game.Controller
	session  models.Session
	loading  bool
	choice   int // menu selection, index into models.Difficulties
	cursor   int // keyboard selection, index into session.Targets, or -1
	feedback game.FeedbackKind
	width    int
	height   int
}

func NewModel(opts Options) model {
	if opts.Profiles == nil {
		opts.Profiles = models.DefaultProfiles()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = game.ClockScheduler{}
	}
	if opts.Difficulty == "" {
		opts.Difficulty = models.Easy
	}

	ti := textinput.New()
	ti.Placeholder = "Type the word you saw..."
	ti.CharLimit = 32
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorGreen)

	choice := 0
	for i, d := range models.Difficulties {
		if d == opts.Difficulty {
			choice = i
		}
	}

	return model{
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   ti,
		spinner: sp,
		sender:  &programSender{},
		loading: true,
		choice:  choice,
		cursor:  -1,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadWords())
}

func (m model) loadWords() tea.Cmd {
	src, log := m.opts.Source, m.opts.Log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		return wordsLoadedMsg{words.LoadOrDefault(ctx, src, log)}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case wordsLoadedMsg:
		m.start(msg.words)
		return m, nil

	case presentMsg:
		if m.ctrl == nil {
			return m, nil
		}
		// A newer keyboard action may have been applied since the timer
		// fired, so read the session back rather than trusting the message.
		m.session = m.ctrl.Snapshot()
		cmd := m.applyEffects(msg.fx)
		return m, cmd

	case tea.MouseMsg:
		if m.ctrl == nil || m.session.State != models.StatePlaying {
			return m, nil
		}
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		w, h := m.sceneSize()
		sp, ok := spotAt(layoutScene(m.session.Targets, w, h), msg.X-sceneLeft, msg.Y-sceneTop)
		if !ok {
			return m, nil
		}
		m.cursor = sp.Index
		cmd := m.dispatch(game.RevealWord{TargetID: sp.ID})
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.loading || m.ctrl == nil {
			return m, nil
		}
		switch m.session.State {
		case models.StateMenu:
			return m.updateMenu(msg)
		case models.StatePlaying:
			return m.updatePlaying(msg)
		case models.StatePaused:
			return m.updatePaused(msg)
		case models.StateLevelComplete:
			return m.updateLevelComplete(msg)
		case models.StateGameOver:
			return m.updateGameOver(msg)
		}
	}

	return m, nil
}

// start builds the controller once the word pool is known.
func (m *model) start(pool []string) {
	m.loading = false
	rules := game.NewRules(m.opts.Profiles, pool, m.opts.MaxLevel, nil)
	m.ctrl = game.NewController(rules, m.opts.Difficulty, m.opts.Scheduler, m.opts.Log)

	sender := m.sender
	m.ctrl.SetPresenter(game.PresenterFunc(func(_ models.Session, fx []game.Effect) {
		sender.Send(presentMsg{fx})
	}))
	m.session = m.ctrl.Snapshot()
}

func (m *model) dispatch(a game.Action) tea.Cmd {
	s, fx := m.ctrl.Dispatch(a)
	m.session = s
	return m.applyEffects(fx)
}

func (m *model) applyEffects(fx []game.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range fx {
		switch e := e.(type) {
		case game.Feedback:
			m.feedback = e.Kind
			if e.Kind == game.FeedbackCorrect {
				m.input.Reset()
			}
		case game.RenderScene:
			m.cursor = -1
			m.input.Reset()
		case game.ShowScreen:
			if e.State == models.StatePlaying {
				cmds = append(cmds, m.input.Focus())
			} else {
				m.input.Blur()
			}
		}
	}
	return tea.Batch(cmds...)
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.choice = (m.choice + len(models.Difficulties) - 1) % len(models.Difficulties)
	case key.Matches(msg, m.keys.Down):
		m.choice = (m.choice + 1) % len(models.Difficulties)
	case key.Matches(msg, m.keys.Start):
		cmd := m.dispatch(game.StartGame{Difficulty: models.Difficulties[m.choice]})
		return m, cmd
	default:
		if n, ok := digit(msg); ok && n >= 1 && n <= len(models.Difficulties) {
			m.choice = n - 1
		}
	}
	return m, nil
}

func (m model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Pause):
		cmd := m.dispatch(game.Pause{})
		return m, cmd
	case key.Matches(msg, m.keys.Hint):
		cmd := m.dispatch(game.UseHint{})
		return m, cmd
	case key.Matches(msg, m.keys.Submit):
		cmd := m.dispatch(game.SubmitAnswer{Text: m.input.Value()})
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		cmd := m.cycle(1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.cycle(-1)
		return m, cmd
	}

	if n, ok := digit(msg); ok && n >= 1 && n <= len(m.session.Targets) {
		m.cursor = n - 1
		cmd := m.dispatch(game.RevealWord{TargetID: m.session.Targets[n-1].ID})
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycle moves the keyboard selection to the next unfound target in
// direction dir and looks behind it.
func (m *model) cycle(dir int) tea.Cmd {
	n := len(m.session.Targets)
	if n == 0 {
		return nil
	}
	i := m.cursor
	if i < 0 && dir < 0 {
		i = 0
	}
	for range n {
		i = (i + dir + n) % n
		if !m.session.Targets[i].Found {
			m.cursor = i
			return m.dispatch(game.RevealWord{TargetID: m.session.Targets[i].ID})
		}
	}
	return nil
}

func (m model) updatePaused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Resume):
		cmd := m.dispatch(game.Resume{})
		return m, cmd
	case key.Matches(msg, m.keys.Restart):
		cmd := m.dispatch(game.Restart{})
		return m, cmd
	case key.Matches(msg, m.keys.Menu):
		cmd := m.dispatch(game.ReturnToMenu{})
		return m, cmd
	case key.Matches(msg, m.keys.EndGame):
		cmd := m.dispatch(game.EndGame{})
		return m, cmd
	}
	return m, nil
}

func (m model) updateLevelComplete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Proceed):
		cmd := m.dispatch(game.NextLevel{})
		return m, cmd
	case key.Matches(msg, m.keys.EndGame):
		cmd := m.dispatch(game.EndGame{})
		return m, cmd
	}
	return m, nil
}

func (m model) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Restart):
		cmd := m.dispatch(game.Restart{})
		return m, cmd
	case key.Matches(msg, m.keys.Menu):
		cmd := m.dispatch(game.ReturnToMenu{})
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '0' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// sceneSize is the size of the forest interior for the current window.
func (m model) sceneSize() (int, int) {
	w := m.width - sidebarWidth - 2*sceneLeft - 3
	h := m.height - sceneTop - 6
	return max(w, minSceneWidth), max(h, minSceneHeight)
}

func (m model) View() string {
	if m.loading || m.ctrl == nil {
		return fmt.Sprintf("\n  %s Gathering words for the forest...\n", m.spinner.View())
	}

	switch m.session.State {
	case models.StateMenu:
		return m.viewMenu()
	case models.StatePlaying:
		return m.viewPlaying()
	case models.StatePaused:
		return m.viewPaused()
	case models.StateLevelComplete:
		return m.viewLevelComplete()
	case models.StateGameOver:
		return m.viewGameOver()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("WORD FOREST") + "\n\n")
	b.WriteString("Words are hiding behind the trees, rocks and animals.\n")
	b.WriteString("Look behind one, then type the word before it fades.\n\n")

	for i, d := range models.Difficulties {
		p := m.opts.Profiles[d]
		line := fmt.Sprintf("%d. %-7s %3ds · %2d words · %d hints · %2d pts",
			i+1, d, p.TimeLimit, p.WordCount, p.Hints, p.PointsPerWord)
		if i == m.choice {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	help := m.help.View(bindings{m.keys.Up, m.keys.Down, m.keys.Start, m.keys.Quit})
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(b.String()), helpStyle.Render(help))
}

func (m model) viewPlaying() string {
	s := m.session
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		statStyle.Render(fmt.Sprintf("Level %d/%d", s.Level, s.MaxLevel)),
		" ",
		statStyle.Render(fmt.Sprintf("Score %d", s.Score)),
		" ",
		statStyle.Render(fmt.Sprintf("Time %ds", s.TimeLeft)),
		" ",
		statStyle.Render(fmt.Sprintf("Hints %d", s.Hints)),
	)

	w, h := m.sceneSize()
	forest := forestStyle.Render(renderScene(s, w, h, m.cursor))

	side := titleStyle.Render("FOREST") + "\n" +
		fmt.Sprintf("Found %d/%d\n", len(s.Targets)-s.Remaining(), len(s.Targets)) +
		fmt.Sprintf("Difficulty: %s\n\n", s.Difficulty)
	if s.Message != "" {
		side += messageStyle(m.feedback).Width(sidebarWidth-4).Render(s.Message) + "\n\n"
	}
	if s.HintText != "" {
		side += hintedStyle.Width(sidebarWidth-4).Render(s.HintText) + "\n"
	}
	sidebar := sideStyle.Width(sidebarWidth).Height(h + 2).Render(side)

	help := m.help.View(bindings{m.keys.Next, m.keys.Submit, m.keys.Hint, m.keys.Pause, m.keys.ForceQuit})

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, forest, " ", sidebar),
		"\n"+m.input.View(),
		"\n"+helpStyle.Render(help),
	)
}

func (m model) viewPaused() string {
	s := m.session
	body := titleStyle.Render("PAUSED") + "\n\n" +
		fmt.Sprintf("Level %d/%d · Score %d · %ds left\n", s.Level, s.MaxLevel, s.Score, s.TimeLeft)
	help := m.help.View(bindings{m.keys.Resume, m.keys.Restart, m.keys.Menu, m.keys.EndGame})
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(body), helpStyle.Render(help))
}

func (m model) viewLevelComplete() string {
	s := m.session
	body := titleStyle.Render(fmt.Sprintf("LEVEL %d COMPLETE", s.Level)) + "\n\n"
	if s.Message != "" {
		body += messageStyle(game.FeedbackLevelUp).Render(s.Message) + "\n"
	}
	body += fmt.Sprintf("Score: %d\n", s.Score)

	var help string
	if s.Level < s.MaxLevel {
		help = m.help.View(bindings{m.keys.Proceed, m.keys.EndGame})
	} else {
		body += "\nThat was the last level. Tallying up...\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(body), helpStyle.Render(help))
}

func (m model) viewGameOver() string {
	s := m.session
	body := titleStyle.Render("GAME OVER") + "\n\n"
	if s.Message != "" {
		body += messageStyle(game.FeedbackGameOver).Render(s.Message) + "\n"
	}
	body += fmt.Sprintf("Final score: %d\n", s.FinalScore)
	help := m.help.View(bindings{m.keys.Restart, m.keys.Menu, m.keys.Quit})
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(body), helpStyle.Render(help))
}

// Run plays the game in the terminal until the player quits.
func Run(opts Options) error {
	m := NewModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	m.sender.set(p)

	final, err := p.Run()
	if fm, ok := final.(model); ok && fm.ctrl != nil {
		fm.ctrl.Close()
	}
	return err
}
