package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// dateLayouts are the accepted encodings for a visit date, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// VisitDate is the calendar date a city was visited.
type VisitDate struct {
	time.Time
}

// NewVisitDate wraps t.
func NewVisitDate(t time.Time) VisitDate {
	return VisitDate{Time: t}
}

// ParseVisitDate parses an ISO-8601 date or date-time.
func ParseVisitDate(s string) (VisitDate, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return VisitDate{Time: t}, nil
		}
	}
	return VisitDate{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or RFC 3339)", s)
}

// String returns the RFC 3339 form, or "" for the zero date.
func (d VisitDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(time.RFC3339)
}

func (d VisitDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *VisitDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = VisitDate{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = VisitDate{}
		return nil
	}
	parsed, err := ParseVisitDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d VisitDate) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *VisitDate) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" {
		*d = VisitDate{}
		return nil
	}
	parsed, err := ParseVisitDate(value.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
