package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/jacksmith/worldwise/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supportedLocales = []language.Tag{
	language.English,
	language.MustParse("pt-BR"),
}

var localeMatcher = language.NewMatcher(supportedLocales)

// DefaultLocale is used when no locale is configured or the configured one
// is not supported.
var DefaultLocale = language.English

// MatchLocale returns the supported locale closest to s. Unparseable or
// empty values fall back to DefaultLocale.
func MatchLocale(s string) language.Tag {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return DefaultLocale
	}
	return supportedLocales[idx]
}

type dateNames struct {
	weekdays [7]string
	months   [12]string
	// layout receives weekday, day, month name and year, in that order.
	layout string
}

var englishDates = dateNames{
	weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	months: [12]string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	layout: "%[1]s, %[3]s %[2]d, %[4]d",
}

var portugueseDates = dateNames{
	weekdays: [7]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"},
	months: [12]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
	layout: "%[1]s, %[2]d de %[3]s de %[4]d",
}

func namesFor(tag language.Tag) dateNames {
	base, _ := tag.Base()
	if base.String() == "pt" {
		return portugueseDates
	}
	return englishDates
}

// FormatDate renders d as a long date with weekday, e.g.
// "Monday, January 2, 2006". The date is shown in its own time zone.
// A zero date renders as an empty string.
func FormatDate(d model.VisitDate, tag language.Tag) string {
	if d.IsZero() {
		return ""
	}
	n := namesFor(tag)
	t := d.Time
	return fmt.Sprintf(n.layout, n.weekdays[t.Weekday()], t.Day(), n.months[t.Month()-time.January], t.Year())
}

// FormatPosition renders coordinates with the locale's number format.
func FormatPosition(p model.Position, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%.4f, %.4f", p.Lat, p.Lng)
}
