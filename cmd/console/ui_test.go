package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/pompeii/pkg/state"
	"github.com/jwebster45206/pompeii/pkg/world"
)

type failingBackend struct{ err error }

func (b failingBackend) Start(ctx context.Context) (state.SessionState, error) {
	return state.SessionState{}, b.err
}

func (b failingBackend) Submit(ctx context.Context, input string, tl world.Timeline) (state.SessionState, error) {
	return state.SessionState{}, b.err
}

// newStartedUI returns a sized console with a local session already running.
func newStartedUI(t *testing.T) ConsoleUI {
	t.Helper()
	m := NewConsoleUI(newLocalBackend(testLogger()), testLogger())
	m = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 48})
	m = update(t, m, m.startSession()())
	require.True(t, m.started)
	return m
}

func update(t *testing.T, m ConsoleUI, msg tea.Msg) ConsoleUI {
	t.Helper()
	next, _ := m.Update(msg)
	ui, ok := next.(ConsoleUI)
	require.True(t, ok)
	return ui
}

// enter types input and runs the resulting command to completion.
func enter(t *testing.T, m ConsoleUI, input string) ConsoleUI {
	t.Helper()
	m.textarea.SetValue(input)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(ConsoleUI)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.Empty(t, m.textarea.Value())
	return update(t, m, cmd())
}

func TestConsoleUI_Start(t *testing.T) {
	m := newStartedUI(t)
	assert.True(t, m.ready)
	assert.Equal(t, world.Present, m.active)
	assert.False(t, m.pastVisible())

	presentW, pastW, sideW := m.layout()
	assert.Zero(t, pastW)
	assert.Equal(t, 160, presentW+sideW)

	view := m.View()
	assert.Contains(t, view, "PRESENT DAY")
	assert.NotContains(t, view, "ANCIENT POMPEII")
}

func TestConsoleUI_StartFailure(t *testing.T) {
	m := NewConsoleUI(failingBackend{err: errors.New("connection refused")}, testLogger())
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, m.startSession()())

	assert.False(t, m.started)
	assert.Contains(t, m.View(), "connection refused")

	// Enter does nothing until a session exists.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestConsoleUI_SubmitAndPortal(t *testing.T) {
	m := newStartedUI(t)

	m = enter(t, m, "take vase")
	assert.False(t, m.loading)
	assert.True(t, m.state.HasItem(world.AncientVase))
	assert.Contains(t, m.state.PresentConsole, "> take vase")

	// Tab does nothing before the ancient console is discovered.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, world.Present, m.active)

	m = enter(t, m, "open vase")
	require.True(t, m.pastVisible())
	_, pastW, _ := m.layout()
	assert.Positive(t, pastW)
	assert.Contains(t, m.View(), "ANCIENT POMPEII")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, world.Past, m.active)
	assert.Contains(t, m.notice, "ancient pompeii")

	m = enter(t, m, "look")
	assert.Contains(t, m.state.PastConsole, "> look")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, world.Present, m.active)
}

func TestConsoleUI_EmptyEnterReachesInterpreter(t *testing.T) {
	m := newStartedUI(t)
	before := len(m.state.PresentConsole)

	m = enter(t, m, "   ")
	assert.Greater(t, len(m.state.PresentConsole), before)
}

func TestConsoleUI_CommandError(t *testing.T) {
	m := newStartedUI(t)
	m = update(t, m, commandResultMsg{err: errors.New("session not found")})

	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "session not found")
	assert.Equal(t, world.MainSquare, m.state.CurrentLocation, "state is kept on error")
}

func TestConsoleUI_MapResizesConsoles(t *testing.T) {
	m := newStartedUI(t)
	closed := m.consoleHeight()

	m = enter(t, m, "take tourist map")
	m = enter(t, m, "open map")
	require.True(t, m.state.IsMapOpen)
	assert.Less(t, m.consoleHeight(), closed)
	assert.Contains(t, m.View(), world.MapLines[0])

	m = enter(t, m, "open map")
	assert.Equal(t, closed, m.consoleHeight())
}

func TestConsoleUI_CopyTranscript(t *testing.T) {
	m := newStartedUI(t)

	var copied string
	m.copyToClipboard = func(s string) error {
		copied = s
		return nil
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, strings.Join(m.state.PresentConsole, "\n"), copied)
	assert.Contains(t, m.notice, "Copied")

	m.copyToClipboard = func(string) error { return errors.New("no clipboard") }
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Contains(t, m.notice, "no clipboard")
}

func TestConsoleUI_QuitModal(t *testing.T) {
	m := newStartedUI(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Leave Pompeii?")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.False(t, m.showQuitModal)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.True(t, m.showQuitModal)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestWriteSidePanel(t *testing.T) {
	s := state.InitialState()
	panel := writeSidePanel(s, world.Present, false)
	assert.Contains(t, panel, "Forum Ruins")
	assert.Contains(t, panel, "Nothing")
	assert.NotContains(t, panel, "Convinced:")
	assert.NotContains(t, panel, "Tab: Switch console")

	s = state.Submit(s, "take vase", world.Present)
	s = state.Submit(s, "open vase", world.Present)
	panel = writeSidePanel(s, world.Past, true)
	assert.Contains(t, panel, "The Forum")
	assert.Contains(t, panel, "Ancient Vase")
	assert.Contains(t, panel, "0 of 4 residents")
	assert.Contains(t, panel, "Tab: Switch console")
	assert.Contains(t, panel, "Ancient Pompeii, 79 AD")
}

func TestRenderTranscript(t *testing.T) {
	out := renderTranscript([]string{"> look", "=== Mission status ===", "A very long line of narrative that must wrap"}, 20)
	assert.Contains(t, out, "> look")
	assert.Contains(t, out, "Mission status")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 20+len("\x1b[0m")*4)
	}
}
