package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/profile"
)

func baselineProfile() profile.Profile {
	return profile.Profile{
		HeatingType: profile.Ptr(profile.HeatingOil),
		OwnsCar:     profile.Ptr(true),
		CarType:     profile.Ptr(profile.CarDiesel),
		WeeklyKm:    profile.Ptr(300.0),
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and runs a returned rescore command, mimicking the
// Bubble Tea runtime for synchronous tests.
func send(t *testing.T, m *WhatIfModel, msg tea.Msg) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	if m.state == WhatIfStateEditing {
		// Cursor blink commands would block; the caller does not need them.
		return cmd
	}
	if out, ok := cmd().(rescoreMsg); ok {
		_, _ = m.Update(out)
		return nil
	}
	return cmd
}

func focus(t *testing.T, m *WhatIfModel, field profile.Field) {
	t.Helper()
	for i, row := range m.rows {
		if row.Spec.Field == field {
			m.focusedRow = i
			return
		}
	}
	t.Fatalf("field %s not in the simulator", field)
}

func TestNewWhatIfModel(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())

	require.Len(t, m.rows, len(profile.Fields()))
	assert.Equal(t, WhatIfStateBrowsing, m.state)
	assert.InDelta(t, 3.5, m.Baseline().TotalScore, 1e-9)
	assert.Equal(t, m.Baseline(), m.Result())
	assert.Empty(t, m.Changes())

	for _, row := range m.rows {
		switch row.Spec.Field {
		case profile.FieldHeatingType:
			assert.Equal(t, "fioul", row.OriginalValue)
		case profile.FieldOwnsCar:
			assert.Equal(t, "oui", row.OriginalValue)
		case profile.FieldGender:
			assert.Empty(t, row.OriginalValue)
		}
	}
}

func TestWhatIfModel_Navigation(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())

	send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.focusedRow, "cannot move above the first row")

	send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	send(t, m, keyRunes("j"))
	assert.Equal(t, 2, m.focusedRow)

	for range len(m.rows) + 3 {
		send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, len(m.rows)-1, m.focusedRow, "cannot move below the last row")

	send(t, m, keyRunes("k"))
	assert.Equal(t, len(m.rows)-2, m.focusedRow)
}

func TestWhatIfModel_CycleChoice(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	focus(t, m, profile.FieldHeatingType)

	// fioul is the last heating type, so "next" wraps to the first.
	send(t, m, tea.KeyMsg{Type: tea.KeyRight})

	require.NotNil(t, m.Profile().HeatingType)
	assert.Equal(t, profile.HeatingNone, *m.Profile().HeatingType)
	assert.InDelta(t, 2.5, m.Result().TotalScore, 1e-9)
	assert.InDelta(t, 3.5, m.Baseline().TotalScore, 1e-9, "baseline is untouched")
	assert.Equal(t, map[profile.Field]string{profile.FieldHeatingType: "aucun"}, m.Changes())

	send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, profile.HeatingOil, *m.Profile().HeatingType)
	assert.Empty(t, m.Changes())
}

func TestWhatIfModel_ChangesBeforeRescoreAccumulate(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	focus(t, m, profile.FieldHeatingType)

	_, first := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, first)
	require.NotNil(t, second)

	require.NotNil(t, m.Profile().HeatingType)
	assert.Equal(t, profile.HeatingHeatPump, *m.Profile().HeatingType, "second press starts from the first")
	assert.Equal(t, map[profile.Field]string{profile.FieldHeatingType: "pompe-chaleur"}, m.Changes())

	focus(t, m, profile.FieldOwnsCar)
	_, third := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.NotNil(t, third)
	assert.Equal(t, profile.HeatingHeatPump, *m.Profile().HeatingType, "other fields keep pending edits")

	_, _ = m.Update(third())
	_, _ = m.Update(first())
	_, _ = m.Update(second())
	assert.Equal(t, footprint.Calculate(m.Profile()), m.Result(), "late scores of older revisions are ignored")
}

func TestWhatIfModel_CycleUnansweredAndNumeric(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())

	focus(t, m, profile.FieldHomeInsulation)
	send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.NotNil(t, m.Profile().HomeInsulation)
	assert.Equal(t, profile.InsulationNo, *m.Profile().HomeInsulation, "left from unanswered picks the last value")

	focus(t, m, profile.FieldWeeklyKm)
	before := m.Profile()
	send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, before, m.Profile(), "numeric fields do not cycle")
}

func TestWhatIfModel_EditField(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	focus(t, m, profile.FieldWeeklyKm)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, WhatIfStateEditing, m.state)
	assert.Equal(t, "300", m.input.Value())

	for range 3 {
		send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	send(t, m, keyRunes("q"))
	assert.Equal(t, WhatIfStateEditing, m.state, "q is text while editing")
	send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	send(t, m, keyRunes("120"))
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, WhatIfStateBrowsing, m.state)
	require.NotNil(t, m.Profile().WeeklyKm)
	assert.InDelta(t, 120.0, *m.Profile().WeeklyKm, 1e-9)
	assert.InDelta(t, 0.8+0.7+0.4, m.Result().Breakdown.Transport, 1e-9)
	assert.Equal(t, "120", m.Changes()[profile.FieldWeeklyKm])
}

func TestWhatIfModel_EditErrors(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	focus(t, m, profile.FieldHeatingType)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("charbon")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, profile.ErrUnknownValue)
	assert.Equal(t, profile.HeatingOil, *m.Profile().HeatingType, "rejected input changes nothing")
	assert.Contains(t, m.View(), "Erreur")

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.NoError(t, m.err, "starting a new edit clears the error")
	send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, WhatIfStateBrowsing, m.state)
	assert.Empty(t, m.Changes())
}

func TestWhatIfModel_ClearNumericWithGarbage(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	focus(t, m, profile.FieldWeeklyKm)

	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.input.SetValue("beaucoup")
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.NoError(t, m.err)
	assert.Nil(t, m.Profile().WeeklyKm, "garbage numbers become unanswered")
	assert.InDelta(t, 1.5, m.Result().Breakdown.Transport, 1e-9)
}

func TestWhatIfModel_Reset(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	focus(t, m, profile.FieldOwnsCar)
	send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotEmpty(t, m.Changes())
	assert.InDelta(t, 2.0, m.Result().TotalScore, 1e-9, "car type no longer counts once the car is gone")

	send(t, m, keyRunes("r"))

	assert.Empty(t, m.Changes())
	assert.Equal(t, m.Baseline(), m.Result())
}

func TestWhatIfModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: keyRunes("q")},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWhatIfModel(profile.New())
			_, cmd := m.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Equal(t, WhatIfStateQuitting, m.state)
			assert.Empty(t, m.View())
		})
	}

	t.Run("ctrl+c while editing", func(t *testing.T) {
		m := NewWhatIfModel(profile.New())
		send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		require.NotNil(t, cmd)
		assert.Equal(t, WhatIfStateQuitting, m.state)
	})
}

func TestWhatIfModel_View(t *testing.T) {
	m := NewWhatIfModel(baselineProfile())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})

	view := m.View()
	assert.Contains(t, view, "Simulateur d'empreinte")
	assert.Contains(t, view, "Actuel")
	assert.Contains(t, view, "Simulation")
	assert.Contains(t, view, string(profile.FieldHeatingType))
	assert.Contains(t, view, footprint.Label(profile.DomainTransport))
	assert.Contains(t, view, "quitter")

	focus(t, m, profile.FieldHeatingType)
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "pompe-chaleur", "editing a choice lists its values")
}

func TestWhatIfModel_VisibleRange(t *testing.T) {
	m := NewWhatIfModel(profile.New())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})

	start, end := m.visibleRange()
	assert.Equal(t, 0, start)
	assert.Equal(t, minVisibleRows, end)

	m.focusedRow = len(m.rows) - 1
	start, end = m.visibleRange()
	assert.Equal(t, len(m.rows), end)
	assert.Equal(t, len(m.rows)-minVisibleRows, start)
}

func TestNextValue(t *testing.T) {
	values := []string{"a", "b", "c"}
	tests := []struct {
		current string
		step    int
		want    string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"", 1, "a"},
		{"", -1, "c"},
		{"zzz", 1, "a"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, nextValue(values, tt.current, tt.step), "%q%+d", tt.current, tt.step)
	}
}
