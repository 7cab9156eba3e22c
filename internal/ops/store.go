// Package ops holds the city store: the shared state of known cities and the
// remote-backed operations that change it.
package ops

import (
	"context"
	"strings"
	"sync"

	"github.com/jacksmith/worldwise/internal/model"
	"go.uber.org/zap"
)

// Messages recorded in State.Error when a remote call fails.
const (
	MsgFetchCities = "Something went wrong with fetching cities."
	MsgFetchCity   = "Something went wrong with fetching a city."
	MsgCreateCity  = "Something went wrong with creating a city."
	MsgDeleteCity  = "Something went wrong with deleting a city."
)

// Remote defines the cities API required by the store.
// The concrete implementation is remote.Client, but this interface allows
// alternative backends (in-memory, file, etc.) for testing.
type Remote interface {
	ListCities(ctx context.Context) ([]model.City, error)
	GetCity(ctx context.Context, id model.CityID) (model.City, error)
	CreateCity(ctx context.Context, newCity model.City) (model.City, error)
	DeleteCity(ctx context.Context, id model.CityID) error
}

// CityStore is the state container for cities. Operations never return
// errors: a failure is logged and its fixed message is recorded in
// State.Error. All methods are safe for concurrent use.
type CityStore struct {
	remote Remote
	logger *zap.Logger

	initOnce sync.Once

	mu    sync.Mutex
	state State
	// selectSeq numbers GetCity/CreateCity requests; only a response
	// carrying the latest number may change the selection.
	selectSeq uint64
	selecting model.CityID
	subs      map[chan State]struct{}
}

// New returns an empty store. Call Init to perform the initial load.
func New(remote Remote, logger *zap.Logger) *CityStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CityStore{
		remote: remote,
		logger: logger,
		subs:   make(map[chan State]struct{}),
	}
}

// Open returns a store that has completed its initial load.
func Open(ctx context.Context, remote Remote, logger *zap.Logger) *CityStore {
	s := New(remote, logger)
	s.Init(ctx)
	return s
}

// Init loads the full collection. Only the first call has any effect.
func (s *CityStore) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		s.dispatch(started{})

		cities, err := s.remote.ListCities(ctx)
		if err != nil {
			s.logger.Warn("failed to fetch cities", zap.Error(err))
			s.dispatch(failed{message: MsgFetchCities})
			return
		}
		s.dispatch(citiesLoaded{cities: cities})
	})
}

// State returns a snapshot of the current state.
func (s *CityStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel that receives a snapshot after every
// transition. Only the latest undelivered snapshot is kept. The returned
// function unsubscribes and closes the channel.
func (s *CityStore) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// GetCity selects the city with the given ID, fetching it from the remote.
// It makes no remote call when id is NoCity, is already selected, or is the
// selection currently being fetched. Re-selecting the current city discards
// any other selection still in flight.
func (s *CityStore) GetCity(ctx context.Context, id model.CityID) {
	s.mu.Lock()
	if id == model.NoCity || id == s.selecting {
		s.mu.Unlock()
		return
	}
	if id == s.state.CurrentCity.ID {
		// Asking for the current city again still outranks a pending
		// selection of another one.
		if s.selecting != model.NoCity {
			s.beginSelectLocked(model.NoCity)
		}
		s.mu.Unlock()
		return
	}
	seq := s.beginSelectLocked(id)
	s.dispatchLocked(started{})
	s.mu.Unlock()

	city, err := s.remote.GetCity(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.latestSelectLocked(seq) {
		s.dispatchLocked(superseded{})
		return
	}
	if err != nil {
		s.logger.Warn("failed to fetch city", zap.Stringer("id", id), zap.Error(err))
		s.dispatchLocked(failed{message: MsgFetchCity})
		return
	}
	s.dispatchLocked(cityLoaded{city: city})
}

// GetCityString is GetCity for an ID taken from user input or a link.
// An empty string means "no ID" and does nothing; a malformed ID is
// recorded as a failed fetch.
func (s *CityStore) GetCityString(ctx context.Context, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	id, err := model.ParseCityID(raw)
	if err != nil {
		s.logger.Warn("failed to fetch city", zap.String("id", raw), zap.Error(err))
		s.mu.Lock()
		s.dispatchLocked(started{})
		s.dispatchLocked(failed{message: MsgFetchCity})
		s.mu.Unlock()
		return
	}
	s.GetCity(ctx, id)
}

// CreateCity submits newCity and, on success, appends the server's copy to
// the collection and selects it. The collection is unchanged on failure.
func (s *CityStore) CreateCity(ctx context.Context, newCity model.City) {
	s.mu.Lock()
	seq := s.beginSelectLocked(model.NoCity)
	s.dispatchLocked(started{})
	s.mu.Unlock()

	created, err := s.remote.CreateCity(ctx, newCity)

	s.mu.Lock()
	defer s.mu.Unlock()
	latest := s.latestSelectLocked(seq)
	if err != nil {
		s.logger.Warn("failed to create city", zap.String("name", newCity.CityName), zap.Error(err))
		s.dispatchLocked(failed{message: MsgCreateCity})
		return
	}
	// A stale create still lands in the collection since the city exists
	// remotely, but it does not take the selection.
	s.dispatchLocked(cityCreated{city: created, selects: latest})
}

// DeleteCity deletes the city remotely and, on success, removes it from the
// collection. A delete for an ID that is already pending is ignored.
func (s *CityStore) DeleteCity(ctx context.Context, id model.CityID) {
	s.mu.Lock()
	if id == model.NoCity || s.state.PendingDeletes[id] {
		s.mu.Unlock()
		return
	}
	s.dispatchLocked(started{deleting: id})
	s.mu.Unlock()

	err := s.remote.DeleteCity(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.logger.Warn("failed to delete city", zap.Stringer("id", id), zap.Error(err))
		s.dispatchLocked(failed{message: MsgDeleteCity, deleting: id})
		return
	}
	s.dispatchLocked(cityDeleted{id: id})
}

func (s *CityStore) beginSelectLocked(id model.CityID) uint64 {
	s.selectSeq++
	s.selecting = id
	return s.selectSeq
}

// latestSelectLocked reports whether seq is still the latest selection
// request, clearing the in-flight selection if so.
func (s *CityStore) latestSelectLocked(seq uint64) bool {
	if seq != s.selectSeq {
		s.logger.Debug("discarding stale selection response", zap.Uint64("seq", seq), zap.Uint64("latest", s.selectSeq))
		return false
	}
	s.selecting = model.NoCity
	return true
}

func (s *CityStore) dispatch(t transition) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(t)
}

// dispatchLocked is the only place the state changes.
func (s *CityStore) dispatchLocked(t transition) {
	s.state = t.apply(s.state)
	s.state.Version++
	s.logger.Debug("transition",
		zap.String("type", t.name()),
		zap.Int("cities", len(s.state.Cities)),
		zap.Bool("loading", s.state.IsLoading),
		zap.String("error", s.state.Error))

	if len(s.subs) == 0 {
		return
	}
	snapshot := s.state.clone()
	for ch := range s.subs {
		// Replace any snapshot the subscriber has not read yet.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
