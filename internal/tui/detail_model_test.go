package tui

import (
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/holocron/internal/loader"
)

type fakeController struct {
	mu      sync.Mutex
	ids     []string
	reloads int
}

func (f *fakeController) SetID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
}

func (f *fakeController) Reload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloads++
}

// runCmd executes cmd and any batched commands, returning the messages produced.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m DetailModel, msg tea.Msg) (DetailModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	dm, ok := next.(DetailModel)
	require.True(t, ok)
	return dm, cmd
}

func TestDetailModel_InitStartsCycle(t *testing.T) {
	ctrl := &fakeController{}
	m := NewDetailModel(ctrl, "1")

	assert.True(t, m.State().Loading)
	runCmd(m.Init())
	assert.Equal(t, []string{"1"}, ctrl.ids)
	assert.Contains(t, m.View(), "Loading character")
}

func TestDetailModel_StateMsg(t *testing.T) {
	m := NewDetailModel(&fakeController{}, "1")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 60})

	m, _ = update(t, m, StateMsg{State: lukeState()})
	assert.False(t, m.State().Loading)
	assert.Equal(t, "Luke Skywalker", m.State().Character.Name)
	assert.Contains(t, m.View(), "LUKE SKYWALKER")

	// A state for another identifier is ignored.
	other := loader.NewViewState("2")
	m, _ = update(t, m, StateMsg{State: *other})
	assert.Equal(t, "1", m.State().ID)
	assert.True(t, m.State().HasCharacter())
}

func TestDetailModel_ProgressStatus(t *testing.T) {
	m := NewDetailModel(&fakeController{}, "1")
	state := loader.NewViewState("1")
	state.Loading = true
	state.Fetched = 3
	state.Total = 8
	m, _ = update(t, m, StateMsg{State: *state})
	assert.Contains(t, m.View(), "3/8")
}

func TestDetailModel_Navigation(t *testing.T) {
	ctrl := &fakeController{}
	m := NewDetailModel(ctrl, "1")
	m, _ = update(t, m, StateMsg{State: lukeState()})

	m, cmd := update(t, m, key("n"))
	assert.Equal(t, "2", m.ID())
	assert.True(t, m.State().Loading)
	assert.False(t, m.State().HasCharacter())
	runCmd(cmd)
	assert.Equal(t, []string{"2"}, ctrl.ids)

	m, cmd = update(t, m, key("p"))
	assert.Equal(t, "1", m.ID())
	runCmd(cmd)

	m, cmd = update(t, m, key("p"))
	assert.Equal(t, "1", m.ID(), "identifiers start at 1")
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"2", "1"}, ctrl.ids)
}

func TestDetailModel_Reload(t *testing.T) {
	ctrl := &fakeController{}
	m := NewDetailModel(ctrl, "5")
	m, _ = update(t, m, StateMsg{State: lukeState()})

	m, cmd := update(t, m, key("r"))
	assert.True(t, m.State().Loading)
	runCmd(cmd)
	assert.Equal(t, 1, ctrl.reloads)
}

func TestDetailModel_Quit(t *testing.T) {
	m := NewDetailModel(&fakeController{}, "1")
	m, cmd := update(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestDetailModel_SpinnerStopsWhenLoaded(t *testing.T) {
	m := NewDetailModel(&fakeController{}, "1")
	_, cmd := update(t, m, m.spinner.Tick())
	assert.NotNil(t, cmd)

	state := lukeState()
	m, _ = update(t, m, StateMsg{State: state})
	_, cmd = update(t, m, spinner.TickMsg{})
	assert.Nil(t, cmd)
}
