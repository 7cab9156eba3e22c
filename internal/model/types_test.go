package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) VisitDate {
	t.Helper()
	d, err := ParseVisitDate(s)
	require.NoError(t, err)
	return d
}

func TestCityLink(t *testing.T) {
	c := City{ID: 73930385, Position: Position{Lat: 38.727881642324164, Lng: -9.140900099907554}}
	assert.Equal(t, "73930385?lat=38.727881642324164&lng=-9.140900099907554", c.Link())

	c = City{ID: 2, Position: Position{Lat: 40, Lng: 0}}
	assert.Equal(t, "2?lat=40&lng=0", c.Link())
}

func TestCityIsZero(t *testing.T) {
	assert.True(t, City{}.IsZero())
	assert.False(t, City{ID: 1}.IsZero())
	assert.False(t, City{CityName: "Rome"}.IsZero())
}

func TestCityJSONShape(t *testing.T) {
	input := `{
		"cityName": "Lisbon",
		"country": "Portugal",
		"emoji": "🇵🇹",
		"date": "2027-10-31T15:59:59.138Z",
		"notes": "My favorite city so far!",
		"position": {"lat": 38.727881642324164, "lng": -9.140900099907554},
		"id": 73930385
	}`

	var c City
	require.NoError(t, json.Unmarshal([]byte(input), &c))
	assert.Equal(t, CityID(73930385), c.ID)
	assert.Equal(t, "Lisbon", c.CityName)
	assert.Equal(t, "Portugal", c.Country)
	assert.Equal(t, "🇵🇹", c.Emoji)
	assert.Equal(t, "My favorite city so far!", c.Notes)
	assert.Equal(t, 38.727881642324164, c.Position.Lat)
	assert.Equal(t, -9.140900099907554, c.Position.Lng)
	assert.Equal(t, 2027, c.Date.Year())
	assert.Equal(t, time.October, c.Date.Month())
	assert.Equal(t, 31, c.Date.Day())
}

func TestNewCityOmitsID(t *testing.T) {
	c := City{
		CityName: "Rome",
		Emoji:    "🇮🇹",
		Date:     NewVisitDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		Position: Position{Lat: 41.9, Lng: 12.5},
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "id")
	assert.NotContains(t, raw, "notes")
	assert.Equal(t, "Rome", raw["cityName"])
	assert.Equal(t, "2024-05-01T00:00:00Z", raw["date"])
	assert.Equal(t, map[string]any{"lat": 41.9, "lng": 12.5}, raw["position"])
}

func TestValidateNewCity(t *testing.T) {
	valid := City{
		CityName: "Rome",
		Date:     mustDate(t, "2024-05-01"),
		Position: Position{Lat: 41.9, Lng: 12.5},
	}
	require.NoError(t, ValidateNewCity(valid))

	tests := []struct {
		name   string
		mutate func(c *City)
		want   string
	}{
		{name: "blank name", mutate: func(c *City) { c.CityName = "   " }, want: "city name"},
		{name: "latitude too high", mutate: func(c *City) { c.Position.Lat = 90.5 }, want: "latitude"},
		{name: "latitude too low", mutate: func(c *City) { c.Position.Lat = -91 }, want: "latitude"},
		{name: "longitude out of range", mutate: func(c *City) { c.Position.Lng = 181 }, want: "longitude"},
		{name: "missing date", mutate: func(c *City) { c.Date = VisitDate{} }, want: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := ValidateNewCity(c)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCity))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
