package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/holocron/internal/loader"
)

// Controller drives fetch cycles for the detail view. *loader.Session satisfies it.
type Controller interface {
	SetID(id string)
	Reload()
}

// StateMsg delivers a view state published by the session.
type StateMsg struct {
	State loader.ViewState
}

// Default dimensions before the first WindowSizeMsg.
const (
	detailDefaultWidth  = 100
	detailDefaultHeight = 30
	detailChromeHeight  = 3
)

// DetailModel is the Bubble Tea model for browsing characters by identifier.
type DetailModel struct {
	ctrl    Controller
	id      string
	state   loader.ViewState
	spinner spinner.Model
	view    viewport.Model

	width    int
	height   int
	quitting bool
}

// NewDetailModel creates a model that starts on id.
func NewDetailModel(ctrl Controller, id string) DetailModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorSpinner)),
	)
	m := DetailModel{
		ctrl:    ctrl,
		id:      id,
		spinner: s,
		view:    viewport.New(detailDefaultWidth, detailDefaultHeight-detailChromeHeight),
		width:   detailDefaultWidth,
		height:  detailDefaultHeight,
	}
	m.state = *loader.NewViewState(id)
	m.state.Loading = true
	return m
}

// ID returns the identifier being shown.
func (m DetailModel) ID() string { return m.id }

// State returns the last state received.
func (m DetailModel) State() loader.ViewState { return m.state }

// Init starts the first fetch cycle and the spinner.
func (m DetailModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.id))
}

// load asks the controller for a new cycle. The result arrives later as a StateMsg.
func (m DetailModel) load(id string) tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.SetID(id)
		return nil
	}
}

// Update handles messages and updates the model state.
//
//nolint:recvcheck // Bubble Tea models are values.
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = msg.Width
		m.view.Height = max(1, msg.Height-detailChromeHeight)
		m.refresh()
		return m, nil

	case StateMsg:
		// Updates for an identifier the user has already left are ignored.
		if msg.State.ID != m.id {
			return m, nil
		}
		m.state = msg.State
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m DetailModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "n", "right":
		return m.navigate(1)
	case "p", "left":
		return m.navigate(-1)
	case "r":
		m.startLoading(m.id)
		ctrl := m.ctrl
		return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
			ctrl.Reload()
			return nil
		})
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// navigate moves to the neighbouring numeric identifier. Identifiers start at 1.
func (m DetailModel) navigate(delta int) (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(m.id)
	if err != nil {
		return m, nil
	}
	next := n + delta
	if next < 1 {
		return m, nil
	}
	id := strconv.Itoa(next)
	m.startLoading(id)
	return m, tea.Batch(m.spinner.Tick, m.load(id))
}

func (m *DetailModel) startLoading(id string) {
	m.id = id
	m.state = *loader.NewViewState(id)
	m.state.Loading = true
	m.view.GotoTop()
	m.refresh()
}

func (m *DetailModel) refresh() {
	m.view.SetContent(RenderCharacterPage(m.state, m.width))
}

// View renders the current view.
func (m DetailModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("holocron"))
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  character #%s", m.id)))
	b.WriteString("\n")

	if m.state.Loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		status := "Loading character"
		if m.state.Total > 0 {
			status = fmt.Sprintf("Loading related records %d/%d", m.state.Fetched, m.state.Total)
		}
		b.WriteString(InfoStyle.Render(status))
		b.WriteString("\n")
	} else {
		b.WriteString(m.view.View())
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("n/→ next • p/← previous • r reload • ↑/↓ scroll • q quit"))
	return b.String()
}
