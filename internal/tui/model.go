// Package tui provides the Bubble Tea game interface.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/akousma/internal/clipstore"
	"github.com/verte-zerg/akousma/internal/game"
	"github.com/verte-zerg/akousma/internal/locale"
	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/playback"
	"github.com/verte-zerg/akousma/internal/stats"
)

// maxConsecutiveErrors ends the session once this many rounds in a row
// fail before input; the clip store is structurally incomplete at that
// point and retrying forever would just loop.
const maxConsecutiveErrors = 3

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	bufferStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Underline(true)
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95DE64"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type playbackDoneMsg struct {
	handle *playback.Handle
	err    error
}

// Model implements the Bubble Tea game UI.
type Model struct {
	cfg     model.Config
	loc     locale.Localizer
	store   *clipstore.Store
	player  *playback.Player
	picker  *game.Picker
	session *stats.Session

	round  *game.Round
	clips  []*clipstore.Clip
	handle *playback.Handle

	flash       string
	consecutive int

	showSummary bool
	summary     model.Summary
	summaryView string

	width  int
	height int

	fatalErr error
}

// NewModel constructs the game model.
func NewModel(cfg model.Config, loc locale.Localizer, store *clipstore.Store, player *playback.Player) *Model {
	return &Model{
		cfg:     cfg,
		loc:     loc,
		store:   store,
		player:  player,
		picker:  game.NewPicker(cfg.Min, cfg.Max),
		session: stats.NewSession(),
	}
}

// Summary returns the session summary; valid after the program finished.
func (m *Model) Summary() model.Summary {
	return m.summary
}

// Err returns the fatal error that ended the program, if any.
func (m *Model) Err() error {
	return m.fatalErr
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.nextRound()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case playbackDoneMsg:
		// Completions from cancelled handles arrive late; only the
		// current handle matters.
		if msg.handle != m.handle {
			return m, nil
		}
		m.handle = nil
		if msg.err != nil {
			return m, m.failRound(msg.err)
		}
		return m, nil
	case tea.KeyMsg:
		if m.showSummary {
			switch msg.Type {
			case tea.KeyCtrlC, tea.KeyEnter, tea.KeyEsc:
				return m, tea.Quit
			default:
				if msg.String() == "q" {
					return m, tea.Quit
				}
				return m, nil
			}
		}
		return m.updateGame(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, m.quit()
	case tea.KeyBackspace, tea.KeyDelete:
		if m.round != nil {
			m.round.Backspace()
		}
		return m, nil
	case tea.KeyEnter:
		return m, m.submit()
	case tea.KeyRunes:
		return m.handleRunes(msg.Runes)
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) (tea.Model, tea.Cmd) {
	if m.round == nil {
		return m, nil
	}
	var cmds []tea.Cmd
	for _, r := range runes {
		switch r {
		case 'q':
			return m, m.quit()
		case 'r':
			if m.round.Repeat() == game.CmdRestartPlayback {
				cmd, ok := m.restartPlayback()
				if !ok {
					return m, cmd
				}
				cmds = append(cmds, cmd)
			}
		case 's':
			if m.round.Show() == game.CmdRoundDone {
				m.flash = m.loc.T("answer_shown", m.round.Target())
				m.recordRound()
				return m, m.nextRound()
			}
		default:
			m.round.Digit(r)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) submit() tea.Cmd {
	if m.round == nil || m.round.Buffer() == "" {
		return nil
	}
	if m.round.Submit() == game.CmdRoundDone {
		m.flash = correctStyle.Render(m.loc.T("correct"))
		m.recordRound()
		return m.nextRound()
	}
	if j := m.round.LastJudgement(); j != nil {
		m.flash = m.loc.T("incorrect", renderFeedback(*j))
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	if m.round != nil && m.round.State() != game.StateDone {
		m.round.Quit()
		m.recordRound()
	}
	return m.finishSession()
}

// nextRound picks a target, resolves its clips, and starts playback.
func (m *Model) nextRound() tea.Cmd {
	if m.consecutive >= maxConsecutiveErrors {
		m.flash = m.loc.T("session_broken")
		return m.finishSession()
	}

	target := m.picker.Next()
	round, err := game.NewRound(target)
	if err != nil {
		// The validated range keeps targets inside the composer's
		// domain; reaching this is a configuration bug.
		m.fatalErr = err
		return tea.Quit
	}
	m.round = round

	clips, err := m.store.ResolveAll(round.Tokens(), m.cfg.Voice)
	if err != nil {
		return m.failRound(err)
	}
	m.clips = clips

	handle, err := m.player.Play(clips)
	if err != nil {
		return m.failRound(err)
	}
	m.handle = handle
	m.round.Begin()
	m.consecutive = 0
	return waitPlayback(handle)
}

// restartPlayback replays the current round's clips; reports round
// failure on a device error.
func (m *Model) restartPlayback() (tea.Cmd, bool) {
	handle, err := m.player.Play(m.clips)
	if err != nil {
		return m.failRound(err), false
	}
	m.handle = handle
	return waitPlayback(handle), true
}

func (m *Model) failRound(err error) tea.Cmd {
	if m.round == nil || m.round.State() == game.StateDone {
		return nil
	}
	m.round.Fail(err)
	m.recordRound()
	m.consecutive++
	m.flash = wrongStyle.Render(m.loc.T("round_error", err.Error()))
	return m.nextRound()
}

func (m *Model) recordRound() {
	if m.round == nil {
		return
	}
	m.session.Record(m.round.Outcome())
	m.round = nil
	m.clips = nil
}

func (m *Model) finishSession() tea.Cmd {
	m.player.Close()
	m.handle = nil
	m.summary = m.session.Summarize()
	m.summaryView = buildSummaryView(m.summary, m.loc)
	m.showSummary = true
	return nil
}

func waitPlayback(h *playback.Handle) tea.Cmd {
	return func() tea.Msg {
		<-h.Done()
		return playbackDoneMsg{handle: h, err: h.Err()}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.showSummary {
		content = m.summaryView
	} else {
		content = m.renderGame()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderGame() string {
	lines := []string{
		titleStyle.Render(m.loc.T("game_title")),
		hintStyle.Render(m.loc.T("game_description", m.cfg.Min, m.cfg.Max)),
		"",
		promptStyle.Render(m.loc.T("enter_number")) + m.renderBuffer(),
		"",
	}
	if m.flash != "" {
		lines = append(lines, m.flash, "")
	}
	lines = append(lines, hintStyle.Render(m.loc.T("controls_hint")))
	lines = append(lines, footerStyle.Render(m.renderFooter()))
	return joinLines(lines)
}

func (m *Model) renderBuffer() string {
	buffer := ""
	if m.round != nil {
		buffer = m.round.Buffer()
	}
	return bufferStyle.Render(buffer) + cursorStyle.Render(" ")
}

func (m *Model) renderFooter() string {
	sum := m.session.Summarize()
	pct := 0.0
	judged := sum.Rounds - sum.Errored
	if judged > 0 {
		pct = float64(sum.FirstTry) / float64(judged) * 100
	}
	return fmt.Sprintf("Rounds %d · First try %.0f%%", sum.Rounds, pct)
}
