package ops

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jacksmith/worldwise/internal/model"
)

var errRemote = errors.New("remote unavailable")

// fakeRemote is an in-memory Remote. Calls for an ID with a registered gate
// block until the gate is closed.
type fakeRemote struct {
	mu      sync.Mutex
	cities  []model.City
	nextID  model.CityID
	listErr error
	getErr  error
	addErr  error
	delErr  error
	gets    []model.CityID
	lists   int
	creates int
	deletes []model.CityID
	gates   map[model.CityID]chan struct{}
	// createGate, when set, blocks CreateCity until closed.
	createGate chan struct{}
	// deleteUnknownOK makes DeleteCity succeed for IDs it does not hold.
	deleteUnknownOK bool
}

func newFakeRemote(cities ...model.City) *fakeRemote {
	f := &fakeRemote{nextID: 1, gates: make(map[model.CityID]chan struct{})}
	for _, c := range cities {
		f.cities = append(f.cities, c)
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	return f
}

func (f *fakeRemote) gate(id model.CityID) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[id] = ch
	return ch
}

func (f *fakeRemote) wait(ctx context.Context, ch chan struct{}) error {
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeRemote) ListCities(ctx context.Context) ([]model.City, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.City(nil), f.cities...), nil
}

func (f *fakeRemote) GetCity(ctx context.Context, id model.CityID) (model.City, error) {
	f.mu.Lock()
	f.gets = append(f.gets, id)
	ch := f.gates[id]
	f.mu.Unlock()

	if err := f.wait(ctx, ch); err != nil {
		return model.City{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return model.City{}, f.getErr
	}
	for _, c := range f.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return model.City{}, errors.New("not found")
}

func (f *fakeRemote) CreateCity(ctx context.Context, newCity model.City) (model.City, error) {
	f.mu.Lock()
	f.creates++
	ch := f.createGate
	f.mu.Unlock()

	if err := f.wait(ctx, ch); err != nil {
		return model.City{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return model.City{}, f.addErr
	}
	newCity.ID = f.nextID
	f.nextID++
	f.cities = append(f.cities, newCity)
	return newCity, nil
}

func (f *fakeRemote) DeleteCity(ctx context.Context, id model.CityID) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, id)
	ch := f.gates[id]
	f.mu.Unlock()

	if err := f.wait(ctx, ch); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	for i, c := range f.cities {
		if c.ID == id {
			f.cities = append(f.cities[:i], f.cities[i+1:]...)
			return nil
		}
	}
	if f.deleteUnknownOK {
		return nil
	}
	return errors.New("not found")
}

func (f *fakeRemote) getCalls() []model.CityID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CityID(nil), f.gets...)
}

func (f *fakeRemote) deleteCalls() []model.CityID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.CityID(nil), f.deletes...)
}

func testCity(id model.CityID, name string) model.City {
	return model.City{
		ID:       id,
		CityName: name,
		Emoji:    "🇵🇹",
		Country:  "Portugal",
		Date:     model.NewVisitDate(time.Date(2027, 10, 31, 15, 59, 59, 0, time.UTC)),
		Position: model.Position{Lat: 38.727881642324164, Lng: -9.140900099907554},
	}
}
