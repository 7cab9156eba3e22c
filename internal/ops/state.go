package ops

import (
	"github.com/jacksmith/worldwise/internal/model"
)

// State is a snapshot of the city store.
type State struct {
	// Cities is the known collection in insertion order.
	Cities []model.City
	// CurrentCity is the most recently fetched or created city, or the zero
	// City when nothing is selected.
	CurrentCity model.City
	IsLoading   bool
	// Error is the message of the last failed operation, empty when none.
	Error string
	// PendingDeletes holds the IDs whose delete request is in flight.
	PendingDeletes map[model.CityID]bool
	// Version counts the transitions applied so far. A snapshot with a
	// lower Version is older.
	Version uint64

	inflight int
}

// FindCity returns the city with the given ID from the collection.
func (s State) FindCity(id model.CityID) (model.City, bool) {
	for _, c := range s.Cities {
		if c.ID == id {
			return c, true
		}
	}
	return model.City{}, false
}

// IsPendingDelete reports whether a delete for id is in flight.
func (s State) IsPendingDelete(id model.CityID) bool {
	return s.PendingDeletes[id]
}

// clone returns a copy that shares no mutable memory with s.
func (s State) clone() State {
	out := s
	if s.Cities != nil {
		out.Cities = append([]model.City(nil), s.Cities...)
	}
	if s.PendingDeletes != nil {
		out.PendingDeletes = make(map[model.CityID]bool, len(s.PendingDeletes))
		for id := range s.PendingDeletes {
			out.PendingDeletes[id] = true
		}
	}
	return out
}

// settle marks one in-flight operation as finished.
func (s State) settle() State {
	if s.inflight > 0 {
		s.inflight--
	}
	s.IsLoading = s.inflight > 0
	return s
}

func (s State) withoutPending(id model.CityID) State {
	if !s.PendingDeletes[id] {
		return s
	}
	pending := make(map[model.CityID]bool, len(s.PendingDeletes))
	for k := range s.PendingDeletes {
		if k != id {
			pending[k] = true
		}
	}
	s.PendingDeletes = pending
	return s
}

// transition is a named state update. The set of transitions is closed:
// only the types below implement it, and each carries its own apply.
// apply must not mutate memory reachable from its input.
type transition interface {
	apply(State) State
	name() string
}

// started begins an operation. A non-zero deleting marks that row pending.
type started struct {
	deleting model.CityID
}

func (started) name() string { return "loading" }

func (t started) apply(s State) State {
	s.inflight++
	s.IsLoading = true
	s.Error = ""
	if t.deleting != model.NoCity {
		pending := make(map[model.CityID]bool, len(s.PendingDeletes)+1)
		for k := range s.PendingDeletes {
			pending[k] = true
		}
		pending[t.deleting] = true
		s.PendingDeletes = pending
	}
	return s
}

// failed records an operation's fixed error message.
type failed struct {
	message  string
	deleting model.CityID
}

func (failed) name() string { return "error" }

func (t failed) apply(s State) State {
	s = s.settle()
	s.Error = t.message
	if t.deleting != model.NoCity {
		s = s.withoutPending(t.deleting)
	}
	return s
}

// superseded finishes a selection whose response arrived after a newer one was issued.
type superseded struct{}

func (superseded) name() string { return "superseded" }

func (superseded) apply(s State) State {
	return s.settle()
}

type citiesLoaded struct {
	cities []model.City
}

func (citiesLoaded) name() string { return "cities/loaded" }

func (t citiesLoaded) apply(s State) State {
	s = s.settle()
	s.Cities = append(make([]model.City, 0, len(t.cities)), t.cities...)
	return s
}

type cityLoaded struct {
	city model.City
}

func (cityLoaded) name() string { return "city/loaded" }

func (t cityLoaded) apply(s State) State {
	s = s.settle()
	s.CurrentCity = t.city
	return s
}

// cityCreated appends the created city and, when selects is set, selects
// it. A city whose ID is already present replaces the existing entry in place.
type cityCreated struct {
	city    model.City
	selects bool
}

func (cityCreated) name() string { return "city/created" }

func (t cityCreated) apply(s State) State {
	s = s.settle()
	cities := make([]model.City, 0, len(s.Cities)+1)
	replaced := false
	for _, c := range s.Cities {
		if c.ID == t.city.ID {
			c = t.city
			replaced = true
		}
		cities = append(cities, c)
	}
	if !replaced {
		cities = append(cities, t.city)
	}
	s.Cities = cities
	if t.selects {
		s.CurrentCity = t.city
	}
	return s
}

// cityDeleted removes the city by ID, keeping the relative order of the
// rest, and clears the selection if it pointed at the deleted city.
type cityDeleted struct {
	id model.CityID
}

func (cityDeleted) name() string { return "city/deleted" }

func (t cityDeleted) apply(s State) State {
	s = s.settle()
	cities := make([]model.City, 0, len(s.Cities))
	for _, c := range s.Cities {
		if c.ID != t.id {
			cities = append(cities, c)
		}
	}
	s.Cities = cities
	if s.CurrentCity.ID == t.id {
		s.CurrentCity = model.City{}
	}
	return s.withoutPending(t.id)
}
