package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// memRemote is an in-memory ops.Remote.
type memRemote struct {
	mu     sync.Mutex
	cities []model.City
	gets   int
	fail   bool
}

func (r *memRemote) ListCities(context.Context) ([]model.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errors.New("down")
	}
	return append([]model.City(nil), r.cities...), nil
}

func (r *memRemote) GetCity(_ context.Context, id model.CityID) (model.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	for _, c := range r.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return model.City{}, errors.New("not found")
}

func (r *memRemote) CreateCity(_ context.Context, c model.City) (model.City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = model.CityID(len(r.cities) + 100)
	r.cities = append(r.cities, c)
	return c, nil
}

func (r *memRemote) DeleteCity(_ context.Context, id model.CityID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, c := range r.cities {
		if c.ID == id {
			r.cities = append(r.cities[:i], r.cities[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func city(id model.CityID, name, emoji string) model.City {
	return model.City{
		ID:       id,
		CityName: name,
		Emoji:    emoji,
		Country:  "Portugal",
		Date:     model.NewVisitDate(time.Date(2027, time.October, 31, 15, 59, 59, 0, time.UTC)),
		Position: model.Position{Lat: 38.727881642324164, Lng: -9.140900099907554},
		Notes:    "Great pastéis.",
	}
}

func newRemote() *memRemote {
	return &memRemote{cities: []model.City{
		city(1, "Lisbon", "🇵🇹"),
		city(2, "Porto", "🇵🇹"),
		city(3, "Faro", "🇵🇹"),
	}}
}

// loaded returns a browser whose initial load has completed.
func loaded(t *testing.T, r *memRemote) (Model, *ops.CityStore) {
	t.Helper()
	store := ops.New(r, zap.NewNop())
	m := New(context.Background(), store, language.English)
	t.Cleanup(m.unsubscribe)

	m = update(t, m, m.run(store.Init)())
	return m, store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestInitialLoad(t *testing.T) {
	m, _ := loaded(t, newRemote())

	assert.Len(t, m.state.Cities, 3)
	assert.False(t, m.state.IsLoading)
	view := m.View()
	assert.Contains(t, view, "3 cities")
	assert.Contains(t, view, "Lisbon")
	assert.Contains(t, view, "Sunday, October 31, 2027")
}

func TestInitReturnsCommand(t *testing.T) {
	store := ops.New(newRemote(), zap.NewNop())
	m := New(context.Background(), store, language.English)
	defer m.unsubscribe()

	assert.NotNil(t, m.Init())
}

func TestInitialLoadFailure(t *testing.T) {
	m, _ := loaded(t, &memRemote{fail: true})

	assert.Contains(t, m.View(), ops.MsgFetchCities)
}

func TestEmptyList(t *testing.T) {
	m, _ := loaded(t, &memRemote{})

	view := m.View()
	assert.Contains(t, view, "0 cities")
	assert.Contains(t, view, "Add your first city")
}

func TestCursorNavigation(t *testing.T) {
	m, _ := loaded(t, newRemote())
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "up")
	assert.Equal(t, 0, m.cursor, "cursor stops at the top")

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "j")
	assert.Equal(t, 2, m.cursor)

	m, _ = press(t, m, "down")
	assert.Equal(t, 2, m.cursor, "cursor stops at the bottom")

	m, _ = press(t, m, "k")
	c, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Porto", c.CityName)
}

func TestEnterSelectsCity(t *testing.T) {
	m, store := loaded(t, newRemote())

	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "enter")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, model.CityID(2), store.State().CurrentCity.ID)
	view := m.View()
	assert.Contains(t, view, "Position: 38.7279, -9.1409")
	assert.Contains(t, view, "Great pastéis.")
	assert.Contains(t, view, "2?lat=38.727881642324164&lng=-9.140900099907554")
}

func TestDeleteDoesNotSelect(t *testing.T) {
	r := newRemote()
	m, store := loaded(t, r)

	m, cmd := press(t, m, "d")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	st := store.State()
	assert.Len(t, st.Cities, 2)
	assert.True(t, st.CurrentCity.IsZero())
	assert.Equal(t, 0, r.gets)
	assert.NotContains(t, m.View(), "Lisbon")
}

func TestDeleteClampsCursor(t *testing.T) {
	m, _ := loaded(t, newRemote())

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "down")
	m, cmd := press(t, m, "x")
	m = update(t, m, cmd())

	assert.Equal(t, 1, m.cursor)
}

func TestDeleteIgnoredWhilePending(t *testing.T) {
	m, _ := loaded(t, newRemote())
	m.state.PendingDeletes = map[model.CityID]bool{1: true}

	_, cmd := press(t, m, "d")
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "[…]")
}

func TestRefresh(t *testing.T) {
	m, store := loaded(t, newRemote())

	store.GetCity(context.Background(), 3)
	m, cmd := press(t, m, "r")
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	assert.Equal(t, model.CityID(3), m.state.CurrentCity.ID)
}

func TestLoadingShowsSpinner(t *testing.T) {
	m, _ := loaded(t, newRemote())
	m.state.IsLoading = true

	assert.Contains(t, m.View(), "Loading…")
}

func TestOlderSnapshotIgnored(t *testing.T) {
	m, store := loaded(t, newRemote())

	// Two quick selections: the superseded one returns after the store
	// has already settled.
	store.GetCity(context.Background(), 2)
	settled := store.State()
	require.False(t, settled.IsLoading)

	stale := settled
	stale.IsLoading = true
	stale.CurrentCity = model.City{}
	stale.Version = settled.Version - 1

	m = update(t, m, stateMsg{state: settled, subscribed: true})
	m = update(t, m, stateMsg{state: stale})

	assert.False(t, m.state.IsLoading)
	assert.Equal(t, model.CityID(2), m.state.CurrentCity.ID)
	assert.NotContains(t, m.View(), "Loading…")
}

func TestOlderSubscriptionSnapshotStillListens(t *testing.T) {
	m, store := loaded(t, newRemote())
	store.GetCity(context.Background(), 2)
	current := store.State()
	m = update(t, m, stateMsg{state: current})

	older := current
	older.Version--
	next, cmd := m.Update(stateMsg{state: older, subscribed: true})
	assert.NotNil(t, cmd, "a dropped subscription snapshot still re-arms the listener")
	assert.Equal(t, current.Version, next.(Model).state.Version)
}

func TestQuit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			store := ops.New(newRemote(), zap.NewNop())
			m := New(context.Background(), store, language.English)

			m, cmd := press(t, m, key)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, m.View())

			// The subscription is closed, so a pending listener returns.
			assert.Nil(t, m.listen()())
		})
	}
}

func TestSubscriptionUpdates(t *testing.T) {
	m, store := loaded(t, newRemote())

	// Drain anything buffered by the initial load.
	select {
	case <-m.updates:
	default:
	}

	go store.GetCity(context.Background(), 1)

	msg := m.listen()()
	sm, ok := msg.(stateMsg)
	require.True(t, ok)
	assert.True(t, sm.subscribed)

	next, cmd := m.Update(sm)
	assert.NotNil(t, cmd, "subscription snapshots re-arm the listener")
	_ = next

	require.Eventually(t, func() bool {
		return store.State().CurrentCity.ID == 1 && !store.State().IsLoading
	}, time.Second, time.Millisecond)
}

func TestPortugueseDates(t *testing.T) {
	store := ops.New(newRemote(), zap.NewNop())
	m := New(context.Background(), store, language.MustParse("pt-BR"))
	defer m.unsubscribe()
	m = update(t, m, m.run(store.Init)())

	assert.Contains(t, m.View(), "domingo, 31 de outubro de 2027")
}
