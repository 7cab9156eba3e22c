package cli

import (
	"context"
	"io"
	"strings"

	"github.com/jacksmith/worldwise/internal/model"
	"github.com/jacksmith/worldwise/internal/ops"
	"golang.org/x/text/language"
)

// Delete affordances shown at the end of a row.
const (
	DeleteMark  = "×"
	PendingMark = "…"
	activeMark  = "›"
)

// Deleter removes a city by ID. *ops.CityStore implements it.
type Deleter interface {
	DeleteCity(ctx context.Context, id model.CityID)
}

// CityRow is the presentation of one city in the list.
type CityRow struct {
	City model.City
	// Link is the navigation target for the row's detail view.
	Link    string
	Active  bool
	Date    string
	Pending bool

	deleter Deleter
}

// NewCityRow builds the row for city. currentID is the selected city's ID
// and pending reports whether a delete for this city is in flight.
func NewCityRow(city model.City, currentID model.CityID, pending bool, locale language.Tag, deleter Deleter) CityRow {
	return CityRow{
		City:    city,
		Link:    city.Link(),
		Active:  city.ID != model.NoCity && city.ID == currentID,
		Date:    FormatDate(city.Date, locale),
		Pending: pending,
		deleter: deleter,
	}
}

// RowsFromState builds one row per city in st, in collection order.
func RowsFromState(st ops.State, locale language.Tag, deleter Deleter) []CityRow {
	rows := make([]CityRow, 0, len(st.Cities))
	for _, c := range st.Cities {
		rows = append(rows, NewCityRow(c, st.CurrentCity.ID, st.IsPendingDelete(c.ID), locale, deleter))
	}
	return rows
}

// Delete asks the store to delete the row's city. It never changes the
// selection, and does nothing while a delete is already pending.
func (r CityRow) Delete(ctx context.Context) {
	if r.Pending || r.deleter == nil {
		return
	}
	r.deleter.DeleteCity(ctx, r.City.ID)
}

// Columns returns the row's cells: active marker, emoji, name, date and
// the delete affordance.
func (r CityRow) Columns() []string {
	marker := " "
	name := r.City.CityName
	if r.Active {
		marker = Green(activeMark)
		name = Bold(name)
	}
	mark := Red(DeleteMark)
	if r.Pending {
		mark = Yellow(PendingMark)
	}
	return []string{marker, r.City.Emoji, name, Gray(r.Date), "[" + mark + "]"}
}

// Render returns the row as a single line.
func (r CityRow) Render() string {
	return strings.Join(r.Columns(), "  ")
}

// RenderCityList writes rows aligned in columns.
func RenderCityList(w io.Writer, rows []CityRow) {
	table := NewTable()
	table.SetMaxWidth(2, DefaultMaxNameWidth)
	for _, r := range rows {
		table.AddRow(r.Columns()...)
	}
	table.Render(w)
}
