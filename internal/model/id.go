package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a city ID cannot be parsed.
var ErrInvalidID = errors.New("invalid ID format")

// CityID is the server-assigned identifier of a city.
type CityID int64

// NoCity is the zero CityID. It never identifies a stored city.
const NoCity CityID = 0

// ParseCityID parses a positive decimal city ID. Surrounding whitespace is ignored.
func ParseCityID(s string) (CityID, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return NoCity, fmt.Errorf("%w: %q is not a valid city ID", ErrInvalidID, s)
	}
	return CityID(n), nil
}

func (id CityID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// UnmarshalJSON accepts both numbers and numeric strings, since JSON file
// servers are inconsistent about which they emit.
func (id *CityID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = NoCity
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*id = NoCity
			return nil
		}
		parsed, err := ParseCityID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*id = CityID(n)
	return nil
}
