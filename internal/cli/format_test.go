package cli

import (
	"testing"
	"time"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLocale(t *testing.T) {
	ptBR := language.MustParse("pt-BR")
	tests := []struct {
		input string
		want  language.Tag
	}{
		{"", language.English},
		{"en", language.English},
		{"en-US", language.English},
		{"pt-BR", ptBR},
		{"pt", ptBR},
		{"fr", language.English},
		{"not a locale!", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchLocale(tt.input))
		})
	}
}

func TestFormatDate(t *testing.T) {
	date := func(y int, m time.Month, d int) model.VisitDate {
		return model.NewVisitDate(time.Date(y, m, d, 15, 59, 59, 0, time.UTC))
	}
	ptBR := language.MustParse("pt-BR")

	tests := []struct {
		name   string
		date   model.VisitDate
		locale language.Tag
		want   string
	}{
		{"english", date(2006, time.January, 2), language.English, "Monday, January 2, 2006"},
		{"english sunday", date(2027, time.October, 31), language.English, "Sunday, October 31, 2027"},
		{"portuguese", date(2006, time.January, 2), ptBR, "segunda-feira, 2 de janeiro de 2006"},
		{"portuguese accents", date(2026, time.March, 1), ptBR, "domingo, 1 de março de 2026"},
		{"zero", model.VisitDate{}, language.English, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDate(tt.date, tt.locale))
		})
	}
}

func TestFormatDateKeepsOwnZone(t *testing.T) {
	// 23:30 at UTC-3 is already the next day in UTC.
	zone := time.FixedZone("BRT", -3*60*60)
	d := model.NewVisitDate(time.Date(2027, time.July, 15, 23, 30, 0, 0, zone))

	assert.Equal(t, "Thursday, July 15, 2027", FormatDate(d, language.English))
}

func TestFormatPosition(t *testing.T) {
	p := model.Position{Lat: 38.727881642324164, Lng: -9.140900099907554}
	assert.Equal(t, "38.7279, -9.1409", FormatPosition(p, language.English))
}
