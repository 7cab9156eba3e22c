// Package ui implements the interactive city browser.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jacksmith/worldwise/internal/cli"
	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/ops"
	"golang.org/x/text/language"
)

// Store is the part of the city store the browser drives.
// *ops.CityStore implements it.
type Store interface {
	Init(ctx context.Context)
	State() ops.State
	Subscribe() (<-chan ops.State, func())
	GetCity(ctx context.Context, id model.CityID)
	DeleteCity(ctx context.Context, id model.CityID)
}

// stateMsg delivers a store snapshot to Update. Snapshots from the
// subscription re-arm the listener; those returned by commands do not.
// Snapshots older than the one on screen are dropped.
type stateMsg struct {
	state      ops.State
	subscribed bool
}

// Model is the bubbletea model for the browser. The store is only read
// through snapshots delivered as stateMsg, so Update stays single-threaded.
type Model struct {
	ctx    context.Context
	store  Store
	locale language.Tag
	styles Styles

	spinner     spinner.Model
	updates     <-chan ops.State
	unsubscribe func()

	state    ops.State
	cursor   int
	quitting bool
}

// New returns a browser over store. The initial load starts in Init.
func New(ctx context.Context, store Store, locale language.Tag) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	styles := DefaultStyles()
	sp.Style = styles.Spinner

	updates, unsubscribe := store.Subscribe()
	return Model{
		ctx:         ctx,
		store:       store,
		locale:      locale,
		styles:      styles,
		spinner:     sp,
		updates:     updates,
		unsubscribe: unsubscribe,
		state:       store.State(),
	}
}

// Init starts the spinner, the subscription and the initial load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen(), m.run(m.store.Init))
}

// listen waits for the next store snapshot.
func (m Model) listen() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg{state: st, subscribed: true}
	}
}

// run performs a store operation and reports the resulting state.
func (m Model) run(op func(context.Context)) tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		op(ctx)
		return stateMsg{state: store.State()}
	}
}

// Selected returns the city under the cursor.
func (m Model) Selected() (model.City, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Cities) {
		return model.City{}, false
	}
	return m.state.Cities[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		var cmd tea.Cmd
		if msg.subscribed {
			cmd = m.listen()
		}
		// Command results race the subscription; never step back in time.
		if msg.state.Version < m.state.Version {
			return m, cmd
		}
		m.state = msg.state
		m.clampCursor()
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.unsubscribe()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.state.Cities)-1 {
			m.cursor++
		}

	case "enter":
		if c, ok := m.Selected(); ok {
			id := c.ID
			return m, m.run(func(ctx context.Context) { m.store.GetCity(ctx, id) })
		}

	case "d", "x":
		if c, ok := m.Selected(); ok {
			row := cli.NewCityRow(c, m.state.CurrentCity.ID, m.state.IsPendingDelete(c.ID), m.locale, m.store)
			if row.Pending {
				return m, nil
			}
			return m, m.run(row.Delete)
		}

	case "r":
		return m, func() tea.Msg { return stateMsg{state: m.store.State()} }
	}
	return m, nil
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Cities) {
		m.cursor = len(m.state.Cities) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("worldwise · %d %s", len(m.state.Cities), plural(len(m.state.Cities), "city", "cities"))))
	b.WriteString("\n")

	rows := cli.RowsFromState(m.state, m.locale, nil)
	if len(rows) == 0 && !m.state.IsLoading {
		b.WriteString(m.styles.Muted.Render("Add your first city by running `worldwise add`."))
		b.WriteString("\n")
	}
	for i, row := range rows {
		b.WriteString(m.renderRow(row, i == m.cursor))
		b.WriteString("\n")
	}

	if m.state.CurrentCity.ID != model.NoCity {
		b.WriteString(m.styles.Detail.Render(m.renderDetail(m.state.CurrentCity)))
		b.WriteString("\n")
	}

	switch {
	case m.state.IsLoading:
		b.WriteString("\n" + m.spinner.View() + " Loading…\n")
	case m.state.Error != "":
		b.WriteString("\n" + m.styles.Error.Render(m.state.Error) + "\n")
	}

	b.WriteString(m.styles.Help.Render("↑/↓ move · enter open · d delete · r refresh · q quit"))
	return b.String()
}

func (m Model) renderRow(row cli.CityRow, underCursor bool) string {
	cursor := "  "
	if underCursor {
		cursor = m.styles.Cursor.Render("> ")
	}
	name := row.City.CityName
	if row.Active {
		name = m.styles.Active.Render(name)
	}
	mark := cli.DeleteMark
	if row.Pending {
		mark = m.styles.Muted.Render(cli.PendingMark)
	}
	return fmt.Sprintf("%s%s %s  %s  [%s]", cursor, row.City.Emoji, name, m.styles.Muted.Render(row.Date), mark)
}

func (m Model) renderDetail(c model.City) string {
	lines := []string{
		m.styles.Selected.Render(strings.TrimSpace(c.Emoji + " " + c.CityName)),
	}
	if c.Country != "" {
		lines = append(lines, "Country:  "+c.Country)
	}
	lines = append(lines,
		"Visited:  "+cli.FormatDate(c.Date, m.locale),
		"Position: "+cli.FormatPosition(c.Position, m.locale),
	)
	if c.Notes != "" {
		lines = append(lines, "", c.Notes)
	}
	lines = append(lines, m.styles.Muted.Render(c.Link()))
	return strings.Join(lines, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, store Store, locale language.Tag, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(ctx, store, locale), opts...).Run()
	return err
}
