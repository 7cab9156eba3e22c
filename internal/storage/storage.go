// Package storage provides the file-backed city database used by the local
// cities server, and the user configuration file.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jacksmith/worldwise/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// dataDir is the name of the worldwise data directory.
	dataDir = ".worldwise"
	// citiesFile is the city database within .worldwise/.
	citiesFile = "cities.yaml"
	// configFile is the name of the storage config file within .worldwise/.
	configFile = "config.yaml"
)

// ErrNotFound is returned when a city ID does not exist.
var ErrNotFound = errors.New("city not found")

// StorageConfig contains settings stored in .worldwise/config.yaml.
type StorageConfig struct {
	Version int `yaml:"version"`
}

// Storage provides access to a .worldwise/ directory. It is safe for
// concurrent use; every mutation rewrites cities.yaml.
type Storage struct {
	root string // path to directory containing .worldwise/

	mu sync.Mutex
}

// Open returns a Storage for the given directory.
// Returns error if .worldwise/ does not exist.
func Open(dir string) (*Storage, error) {
	path := filepath.Join(dir, dataDir)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(".worldwise/ directory not found in %s (run `worldwise init`)", dir)
		}
		return nil, fmt.Errorf("failed to access .worldwise/: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf(".worldwise is not a directory")
	}

	return &Storage{root: dir}, nil
}

// Init creates .worldwise/ with an empty city database, optionally seeded
// with cities. Seed IDs are reassigned in order starting at 1.
// Returns error if .worldwise/ already exists.
func Init(dir string, seed []model.City) (*Storage, error) {
	path := filepath.Join(dir, dataDir)

	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf(".worldwise/ directory already exists in %s", dir)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to check for .worldwise/: %w", err)
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .worldwise/: %w", err)
	}

	cfgData, err := yaml.Marshal(&StorageConfig{Version: 1})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(path, configFile), cfgData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write config.yaml: %w", err)
	}

	cf := &model.CityFile{NextID: 1}
	for _, c := range seed {
		c.ID = cf.NextID
		cf.Cities = append(cf.Cities, c)
		cf.NextID++
	}

	s := &Storage{root: dir}
	if err := model.SaveCityFile(s.citiesPath(), cf); err != nil {
		// Clean up on failure
		os.RemoveAll(path)
		return nil, fmt.Errorf("failed to create city database: %w", err)
	}

	return s, nil
}

// Root returns the root directory containing .worldwise/.
func (s *Storage) Root() string {
	return s.root
}

// DataPath returns the path to the .worldwise/ directory.
func (s *Storage) DataPath() string {
	return filepath.Join(s.root, dataDir)
}

func (s *Storage) citiesPath() string {
	return filepath.Join(s.root, dataDir, citiesFile)
}

// load reads the database. A missing file is an empty database.
func (s *Storage) load() (*model.CityFile, error) {
	cf, err := model.LoadCityFile(s.citiesPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &model.CityFile{NextID: 1}, nil
		}
		return nil, err
	}
	if cf.NextID == model.NoCity {
		cf.NextID = nextFreeID(cf.Cities)
	}
	return cf, nil
}

// nextFreeID returns one past the highest ID in cities.
func nextFreeID(cities []model.City) model.CityID {
	next := model.CityID(1)
	for _, c := range cities {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return next
}

// ListCities returns all cities in insertion order.
func (s *Storage) ListCities() ([]model.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := s.load()
	if err != nil {
		return nil, err
	}
	if cf.Cities == nil {
		return []model.City{}, nil
	}
	return cf.Cities, nil
}

// GetCity returns the city with the given ID.
func (s *Storage) GetCity(id model.CityID) (model.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := s.load()
	if err != nil {
		return model.City{}, err
	}
	for _, c := range cf.Cities {
		if c.ID == id {
			return c, nil
		}
	}
	return model.City{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// CreateCity assigns the next ID to c, appends it and returns the stored city.
// Any ID already set on c is ignored.
func (s *Storage) CreateCity(c model.City) (model.City, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := s.load()
	if err != nil {
		return model.City{}, err
	}

	c.ID = cf.NextID
	cf.Cities = append(cf.Cities, c)
	cf.NextID++

	if err := model.SaveCityFile(s.citiesPath(), cf); err != nil {
		return model.City{}, err
	}
	return c, nil
}

// DeleteCity removes the city with the given ID.
func (s *Storage) DeleteCity(id model.CityID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf, err := s.load()
	if err != nil {
		return err
	}

	kept := cf.Cities[:0]
	found := false
	for _, c := range cf.Cities {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cf.Cities = kept

	return model.SaveCityFile(s.citiesPath(), cf)
}
