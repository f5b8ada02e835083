package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"urlcheck/internal/check"
	core "urlcheck/internal/core"
	"urlcheck/internal/util"
	verinfo "urlcheck/internal/version"
)

// Options configures the TUI.
type Options struct {
	Delay        time.Duration
	FetchTimeout time.Duration
	Logger       zerolog.Logger
}

type model struct {
	ctrl    *check.Controller
	changes <-chan struct{}
	timeout time.Duration

	input textinput.Model
	spin  spinner.Model
	snap  check.Snapshot

	width  int
	height int
}

var (
	styleHeader    = lipgloss.NewStyle().Bold(true)
	styleTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	styleMuted     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleKey       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	styleLabel     = lipgloss.NewStyle().Bold(true)
	styleStatusOK  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleStatusErr = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func newModel(ctrl *check.Controller, changes <-chan struct{}, timeout time.Duration) model {
	m := model{ctrl: ctrl, changes: changes, timeout: timeout}
	m.input = textinput.New()
	m.input.Placeholder = "Enter URL"
	m.input.Prompt = "> "
	m.input.Width = 48
	m.input.Focus()
	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot
	m.snap = ctrl.Snapshot()
	return m
}

// controller -> program bridge
type changedMsg struct{}

// listLoadedMsg reports the end of the startup fetch. Failures are only
// logged by the controller; the list simply stays empty.
type listLoadedMsg struct {
	Err error
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func loadCmd(ctrl *check.Controller, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return listLoadedMsg{Err: ctrl.LoadKnownURLs(ctx)}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spin.Tick,
		loadCmd(m.ctrl, m.timeout),
		waitForChange(m.changes),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if w := msg.Width - 4; w > 10 {
			m.input.Width = w
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.ctrl.Close()
			return m, tea.Quit
		}
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.ctrl.SetInput(m.input.Value())
			m.snap = m.ctrl.Snapshot()
		}
		return m, cmd
	case changedMsg:
		m.snap = m.ctrl.Snapshot()
		return m, waitForChange(m.changes)
	case listLoadedMsg:
		m.snap = m.ctrl.Snapshot()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTop())
	b.WriteString("\n\n")
	b.WriteString(styleTitle.Render("Check if the URL exists"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.help())
	return b.String()
}

func (m model) renderTop() string {
	name := verinfo.Name
	if name == "" {
		name = "urlcheck"
	}
	ver := verinfo.Version
	if ver == "" {
		ver = "dev"
	}
	return styleHeader.Render(name) + " " + styleMuted.Render(ver)
}

func (m model) renderStatus() string {
	st := m.snap.State
	msg := st.Message(m.snap.Input)
	switch {
	case st.Kind == core.Checking:
		return m.spin.View() + " " + styleMuted.Render(msg)
	case st.IsError():
		return styleStatusErr.Render(msg)
	case st.Kind == core.Found:
		return styleStatusOK.Render(msg)
	default:
		return ""
	}
}

func (m model) renderList() string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Available URLs"))
	b.WriteString("\n")
	if !m.snap.Loaded {
		b.WriteString(styleMuted.Render("Loading..."))
		b.WriteString("\n")
		return b.String()
	}
	wURL := 40
	if m.width > 0 {
		// "URL : " + " Type : " + type column
		wURL = m.width - 30
		if wURL < 16 {
			wURL = 16
		}
	}
	for _, r := range m.snap.Records {
		b.WriteString(fmt.Sprintf("  %s %s  %s %s\n",
			styleLabel.Render("URL :"), util.Truncate(r.URL, wURL),
			styleLabel.Render("Type :"), r.Type))
	}
	return b.String()
}

func (m model) help() string {
	return styleKey.Render("[Esc]") + " Quit"
}

// Run starts the TUI program. The controller is closed when the program
// exits so no pending lookup outlives it.
func Run(src check.Source, opts Options) error {
	changes := make(chan struct{}, 1)
	ctrl := check.New(src,
		check.WithDelay(opts.Delay),
		check.WithLogger(opts.Logger),
		check.WithObserver(func(check.Snapshot) {
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	)
	defer ctrl.Close()

	p := tea.NewProgram(newModel(ctrl, changes, opts.FetchTimeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
