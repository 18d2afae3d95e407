package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/pompeii/pkg/command"
	"github.com/jwebster45206/pompeii/pkg/state"
	"github.com/jwebster45206/pompeii/pkg/world"
)

const (
	PlaceHolderText = "Type a command and press Enter..."
	commandTimeout  = 30 * time.Second
)

// ConsoleUI is the BubbleTea model for the two-console game screen.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	backend Backend
	logger  *slog.Logger

	state   state.SessionState
	started bool
	active  world.Timeline

	presentViewport viewport.Model
	pastViewport    viewport.Model
	sideViewport    viewport.Model
	textarea        textarea.Model

	ready   bool
	width   int
	height  int
	err     error
	loading bool
	notice  string

	// Quit confirmation state
	showQuitModal bool

	copyToClipboard func(string) error
}

type sessionStartedMsg struct {
	state state.SessionState
	err   error
}

type commandResultMsg struct {
	state state.SessionState
	err   error
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = panelStyle.
				BorderForeground(lipgloss.Color("205"))

	sidePanelStyle = lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(1).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	mapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("180")) // parchment

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(backend Backend, logger *slog.Logger) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	presentVp := viewport.New(50, 20)
	presentVp.MouseWheelEnabled = true
	pastVp := viewport.New(50, 20)
	pastVp.MouseWheelEnabled = true

	return ConsoleUI{
		backend:         backend,
		logger:          logger,
		active:          world.Present,
		textarea:        ta,
		presentViewport: presentVp,
		pastViewport:    pastVp,
		sideViewport:    viewport.New(20, 20),
		copyToClipboard: clipboard.WriteAll,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(m.startSession(), textarea.Blink)
}

func (m ConsoleUI) startSession() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		s, err := m.backend.Start(ctx)
		return sessionStartedMsg{s, err}
	}
}

func (m ConsoleUI) submit(input string, tl world.Timeline) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		s, err := m.backend.Submit(ctx, input, tl)
		return commandResultMsg{s, err}
	}
}

// pastVisible reports whether the ancient console has been discovered.
func (m ConsoleUI) pastVisible() bool {
	return m.started && m.state.HasDiscoveredAncientConsole
}

// layout returns the outer widths of each console panel and the side panel.
// The past panel width is zero until it is discovered.
func (m ConsoleUI) layout() (presentW, pastW, sideW int) {
	sideW = m.width / 4
	if sideW < 24 {
		sideW = 24
	}
	consoles := m.width - sideW
	if m.pastVisible() {
		presentW = consoles / 2
		pastW = consoles - presentW
		return presentW, pastW, sideW
	}
	return consoles, 0, sideW
}

// consoleHeight is the outer height of a console panel.
func (m ConsoleUI) consoleHeight() int {
	h := m.height - 5 // input, separator, notice line
	if m.state.IsMapOpen {
		h -= len(world.MapLines) + 1
	}
	if h < 5 {
		h = 5
	}
	return h
}

func (m *ConsoleUI) resize() {
	presentW, pastW, sideW := m.layout()
	innerH := m.consoleHeight() - 3 // border and title line

	m.presentViewport.Width = presentW - 4
	m.presentViewport.Height = innerH
	m.pastViewport.Width = pastW - 4
	m.pastViewport.Height = innerH
	m.sideViewport.Width = sideW - 3
	m.sideViewport.Height = m.height - 2
	m.textarea.SetWidth(m.width - sideW - 2)
}

// refreshContent rewraps both transcripts and the side panel for the
// current widths and scrolls the consoles to the latest line.
func (m *ConsoleUI) refreshContent() {
	if !m.started {
		return
	}
	m.presentViewport.SetContent(renderTranscript(m.state.PresentConsole, m.presentViewport.Width))
	m.presentViewport.GotoBottom()
	if m.pastVisible() {
		m.pastViewport.SetContent(renderTranscript(m.state.PastConsole, m.pastViewport.Width))
		m.pastViewport.GotoBottom()
	}
	m.sideViewport.SetContent(writeSidePanel(m.state, m.active, m.pastVisible()))
}

// renderTranscript wraps and colours console lines: echoed input, section
// banners and narrative text each get their own style.
func renderTranscript(lines []string, width int) string {
	if width < 10 {
		width = 10
	}
	var content strings.Builder
	for i, line := range lines {
		if i > 0 {
			content.WriteString("\n")
		}
		wrapped := wordwrap.String(line, width)
		switch {
		case strings.HasPrefix(line, "> "):
			content.WriteString("\n" + userStyle.Render(wrapped))
		case strings.HasPrefix(line, "===") || strings.HasPrefix(line, "***"):
			content.WriteString(titleStyle.Render(wrapped))
		default:
			content.WriteString(narrativeStyle.Render(wrapped))
		}
	}
	return content.String()
}

func writeSidePanel(s state.SessionState, active world.Timeline, pastVisible bool) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("POMPEII") + "\n\n")

	content.WriteString(headingStyle.Render("Console:") + "\n")
	content.WriteString(timelineLabel(active) + "\n\n")

	if loc, ok := world.GetLocation(s.CurrentLocation); ok {
		content.WriteString(headingStyle.Render("Location:") + "\n")
		content.WriteString(loc.Name[active] + "\n\n")
	}

	content.WriteString(headingStyle.Render("Carrying:") + "\n")
	if len(s.Inventory) == 0 {
		content.WriteString("Nothing\n\n")
	} else {
		for _, id := range s.Inventory {
			content.WriteString("• " + world.DisplayName(id) + "\n")
		}
		content.WriteString("\n")
	}

	if s.TimePortalActive {
		content.WriteString(headingStyle.Render("Convinced:") + "\n")
		content.WriteString(fmt.Sprintf("%d of %d residents\n\n", len(s.ConvincedResidents), len(world.NPCOrder)))
	}

	content.WriteString(headingStyle.Render("Commands:") + "\n")
	for _, e := range command.Reference {
		content.WriteString("• " + e.Name + "\n")
	}
	content.WriteString("\n")

	content.WriteString(headingStyle.Render("Keys:") + "\n")
	content.WriteString("• Enter: Send\n")
	if pastVisible {
		content.WriteString("• Tab: Switch console\n")
	}
	content.WriteString("• Ctrl+Y: Copy transcript\n")
	content.WriteString("• Esc: Quit\n")

	return content.String()
}

func timelineLabel(tl world.Timeline) string {
	if tl == world.Past {
		return "Ancient Pompeii, 79 AD"
	}
	return "Present day"
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.presentViewport, vpCmd = m.presentViewport.Update(msg)
		var pastCmd tea.Cmd
		m.pastViewport, pastCmd = m.pastViewport.Update(msg)
		return m, tea.Batch(vpCmd, pastCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.refreshContent()

	case sessionStartedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("Failed to start session", "error", msg.err)
			return m, nil
		}
		m.state = msg.state
		m.started = true
		m.resize()
		m.refreshContent()
		return m, nil

	case commandResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("Command failed", "error", msg.err)
			return m, nil
		}
		m.err = nil
		wasVisible := m.pastVisible()
		wasMapOpen := m.state.IsMapOpen
		m.state = msg.state
		if m.pastVisible() != wasVisible || m.state.IsMapOpen != wasMapOpen {
			m.resize()
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil

		case tea.KeyTab:
			if m.pastVisible() {
				if m.active == world.Present {
					m.active = world.Past
				} else {
					m.active = world.Present
				}
				m.notice = "Now typing in the " + strings.ToLower(timelineLabel(m.active)) + " console."
				m.refreshContent()
			}
			return m, nil

		case tea.KeyCtrlY:
			m.copyTranscript()
			return m, nil

		case tea.KeyEnter:
			if m.loading || !m.started {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			m.notice = ""
			m.loading = true
			return m, m.submit(input, m.active)

		case tea.KeyPgUp, tea.KeyPgDown:
			if m.active == world.Past {
				m.pastViewport, vpCmd = m.pastViewport.Update(msg)
			} else {
				m.presentViewport, vpCmd = m.presentViewport.Update(msg)
			}
			return m, vpCmd
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	return m, tiCmd
}

func (m *ConsoleUI) copyTranscript() {
	lines := m.state.Console(m.active)
	if err := m.copyToClipboard(strings.Join(lines, "\n")); err != nil {
		m.logger.Warn("Failed to copy transcript", "error", err)
		m.notice = "Could not copy to the clipboard: " + err.Error()
		return
	}
	m.notice = fmt.Sprintf("Copied %d lines from the %s console.", len(lines), strings.ToLower(timelineLabel(m.active)))
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Leave Pompeii?"))
	content.WriteString("\n\n")
	content.WriteString("Vesuvius will not wait. Are you sure you want to quit?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderConsolePanel(tl world.Timeline, vp viewport.Model, width int) string {
	style := panelStyle
	title := promptStyle.Render(strings.ToUpper(timelineLabel(tl)))
	if tl == m.active {
		style = activePanelStyle
		title = titleStyle.Render(strings.ToUpper(timelineLabel(tl)))
	}
	return style.Width(width - 2).Height(m.consoleHeight() - 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, vp.View()),
	)
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if m.err != nil && !m.started {
		return errorStyle.Render(fmt.Sprintf("\n  Failed to start game: %v\n\n  Press Esc to quit.", m.err))
	}
	if !m.ready || !m.started {
		return "\n  Initializing..."
	}

	presentW, pastW, sideW := m.layout()
	consoles := m.renderConsolePanel(world.Present, m.presentViewport, presentW)
	if pastW > 0 {
		consoles = lipgloss.JoinHorizontal(lipgloss.Top, consoles,
			m.renderConsolePanel(world.Past, m.pastViewport, pastW))
	}

	rows := []string{consoles}
	if m.state.IsMapOpen {
		rows = append(rows, mapStyle.Render(strings.Join(world.MapLines, "\n")))
	}

	status := promptStyle.Render(m.notice)
	switch {
	case m.loading:
		status = loadingStyle.Render("...")
	case m.err != nil:
		status = errorStyle.Render("Error: " + m.err.Error())
	}

	rows = append(rows,
		separatorStyle.Render(strings.Repeat("─", max(m.width-sideW-2, 1))),
		m.textarea.View(),
		status,
	)
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)

	side := sidePanelStyle.Width(sideW).Height(m.height - 1).Render(m.sideViewport.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, body, side)
}
