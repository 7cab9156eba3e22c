// Package model defines the core data structures for worldwise.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCity is returned when a city fails validation.
var ErrInvalidCity = errors.New("invalid city")

// Position is a geographic coordinate in degrees.
type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// City is a visited location. A City with a zero ID has not been created
// on the server yet.
type City struct {
	ID       CityID    `json:"id,omitempty" yaml:"id,omitempty"`
	CityName string    `json:"cityName" yaml:"city_name"`
	Emoji    string    `json:"emoji" yaml:"emoji"`
	Country  string    `json:"country,omitempty" yaml:"country,omitempty"`
	Date     VisitDate `json:"date" yaml:"date"`
	Position Position  `json:"position" yaml:"position"`
	Notes    string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// IsZero reports whether c is the empty "no city" value.
func (c City) IsZero() bool {
	return c == City{}
}

// Link returns the navigation target for the city: "<id>?lat=<lat>&lng=<lng>".
// Coordinates use the shortest representation that round-trips.
func (c City) Link() string {
	return fmt.Sprintf("%s?lat=%s&lng=%s", c.ID, formatCoord(c.Position.Lat), formatCoord(c.Position.Lng))
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ValidateNewCity checks the fields a client must provide when creating a city.
func ValidateNewCity(c City) error {
	if strings.TrimSpace(c.CityName) == "" {
		return fmt.Errorf("%w: city name must not be empty", ErrInvalidCity)
	}
	if c.Position.Lat < -90 || c.Position.Lat > 90 {
		return fmt.Errorf("%w: latitude %v must be between -90 and 90", ErrInvalidCity, c.Position.Lat)
	}
	if c.Position.Lng < -180 || c.Position.Lng > 180 {
		return fmt.Errorf("%w: longitude %v must be between -180 and 180", ErrInvalidCity, c.Position.Lng)
	}
	if c.Date.IsZero() {
		return fmt.Errorf("%w: visit date is required", ErrInvalidCity)
	}
	return nil
}
