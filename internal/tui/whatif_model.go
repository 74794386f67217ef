package tui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/planetprint/internal/footprint"
	"github.com/rshade/planetprint/internal/profile"
)

// WhatIfState represents the current state of the what-if simulator.
type WhatIfState int

const (
	// WhatIfStateBrowsing lets the user move between fields.
	WhatIfStateBrowsing WhatIfState = iota
	// WhatIfStateEditing shows the text input for the focused field.
	WhatIfStateEditing
	// WhatIfStateQuitting indicates the application is exiting.
	WhatIfStateQuitting
)

// FieldRow is one questionnaire answer in the simulator.
type FieldRow struct {
	Spec          profile.FieldSpec
	OriginalValue string
	CurrentValue  string
}

// Changed reports whether the row differs from the baseline.
func (r FieldRow) Changed() bool {
	return r.CurrentValue != r.OriginalValue
}

// rescoreMsg carries the score of one profile revision back into the model.
type rescoreMsg struct {
	revision int
	result   footprint.Result
}

const (
	whatIfDefaultWidth  = 80
	whatIfDefaultHeight = 30
	inputCharLimit      = 32
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Edit   key.Binding
	Cancel key.Binding
	Reset  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "monter")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "descendre")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "choix précédent")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "choix suivant")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("entrée", "modifier")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("échap", "annuler")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "réinitialiser")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quitter")),
	}
}

// WhatIfModel is the Bubble Tea model of the interactive simulator. It
// starts from a baseline profile and rescores every change against it.
type WhatIfModel struct {
	baseline       profile.Profile
	baselineResult footprint.Result

	current  profile.Profile
	result   footprint.Result
	revision int

	rows       []FieldRow
	focusedRow int
	input      textinput.Model
	keys       keyMap

	state WhatIfState
	err   error

	width  int
	height int
}

// NewWhatIfModel creates a simulator seeded with p.
func NewWhatIfModel(p profile.Profile) *WhatIfModel {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = inputCharLimit

	result := footprint.Calculate(p)
	m := &WhatIfModel{
		baseline:       p,
		baselineResult: result,
		current:        p,
		result:         result,
		input:          input,
		keys:           defaultKeyMap(),
		state:          WhatIfStateBrowsing,
		width:          whatIfDefaultWidth,
		height:         whatIfDefaultHeight,
	}

	specs := profile.Fields()
	m.rows = make([]FieldRow, 0, len(specs))
	for _, spec := range specs {
		value, _ := p.Value(spec.Field)
		m.rows = append(m.rows, FieldRow{Spec: spec, OriginalValue: value, CurrentValue: value})
	}
	return m
}

// Init initializes the model.
func (m *WhatIfModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *WhatIfModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rescoreMsg:
		m.applyRescore(msg)
		return m, nil

	case tea.KeyMsg:
		if m.state == WhatIfStateEditing {
			return m.handleEditKey(msg)
		}
		return m.handleBrowseKey(msg)
	}

	return m, nil
}

func (m *WhatIfModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.state = WhatIfStateQuitting
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.focusedRow > 0 {
			m.focusedRow--
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedRow < len(m.rows)-1 {
			m.focusedRow++
		}

	case key.Matches(msg, m.keys.Prev):
		return m, m.cycle(-1)

	case key.Matches(msg, m.keys.Next):
		return m, m.cycle(1)

	case key.Matches(msg, m.keys.Edit):
		if len(m.rows) == 0 {
			return m, nil
		}
		m.state = WhatIfStateEditing
		m.err = nil
		m.input.SetValue(m.rows[m.focusedRow].CurrentValue)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Reset):
		m.err = nil
		return m, m.setCurrent(m.baseline)
	}

	return m, nil
}

func (m *WhatIfModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		m.state = WhatIfStateQuitting
		return m, tea.Quit

	case key.Matches(msg, m.keys.Edit):
		m.state = WhatIfStateBrowsing
		m.input.Blur()
		return m, m.commit(m.rows[m.focusedRow].Spec.Field, m.input.Value())

	case key.Matches(msg, m.keys.Cancel):
		m.state = WhatIfStateBrowsing
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// cycle moves a choice or boolean field to its previous or next value.
func (m *WhatIfModel) cycle(step int) tea.Cmd {
	if len(m.rows) == 0 {
		return nil
	}
	row := m.rows[m.focusedRow]
	if len(row.Spec.Values) == 0 {
		return nil
	}
	return m.commit(row.Spec.Field, nextValue(row.Spec.Values, row.CurrentValue, step))
}

// commit normalises raw like any other answer, records it immediately and
// schedules a rescore. Rejected input is kept as an inline error and
// changes nothing.
func (m *WhatIfModel) commit(field profile.Field, raw string) tea.Cmd {
	answer, err := profile.ParseAnswer(field, raw)
	if err != nil {
		m.err = err
		return nil
	}
	next, err := m.current.Apply(answer)
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	return m.setCurrent(next)
}

// setCurrent makes p the simulated profile so that later edits build on
// it, and returns the command scoring this revision.
func (m *WhatIfModel) setCurrent(p profile.Profile) tea.Cmd {
	m.current = p
	m.revision++
	for i := range m.rows {
		m.rows[i].CurrentValue, _ = p.Value(m.rows[i].Spec.Field)
	}
	revision := m.revision
	return func() tea.Msg {
		return rescoreMsg{revision: revision, result: footprint.Calculate(p)}
	}
}

// applyRescore keeps only the score of the latest revision.
func (m *WhatIfModel) applyRescore(msg rescoreMsg) {
	if msg.revision != m.revision {
		return
	}
	m.result = msg.result
}

func nextValue(values []string, current string, step int) string {
	i := slices.Index(values, current)
	if i < 0 {
		if step > 0 {
			return values[0]
		}
		return values[len(values)-1]
	}
	n := len(values)
	return values[((i+step)%n+n)%n]
}

// Profile returns the simulated profile.
func (m *WhatIfModel) Profile() profile.Profile {
	return m.current
}

// Result returns the score of the simulated profile.
func (m *WhatIfModel) Result() footprint.Result {
	return m.result
}

// Baseline returns the score of the starting profile.
func (m *WhatIfModel) Baseline() footprint.Result {
	return m.baselineResult
}

// Changes returns the fields that differ from the baseline, keyed by
// field with their new formatted value.
func (m *WhatIfModel) Changes() map[profile.Field]string {
	changes := make(map[profile.Field]string)
	for _, row := range m.rows {
		if row.Changed() {
			changes[row.Spec.Field] = row.CurrentValue
		}
	}
	return changes
}
