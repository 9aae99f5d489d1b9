package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "icaldump/internal/log"
)

// Kind distinguishes the two component types the extractor cares about.
type Kind string

const (
	KindTodo  Kind = "VTODO"
	KindEvent Kind = "VEVENT"
)

// Defaults applied when a component omits the property.
const (
	DefaultSummary = "Untitled Task"
	DefaultStatus  = "NEEDS-ACTION"
)

// Component is the normalized property bag of a single VTODO or VEVENT.
// A non-nil RecurrenceID marks the component as an exception override for
// one instance of the series sharing its UID.
type Component struct {
	Kind Kind

	UID         string
	Summary     string
	Description string
	Status      string

	Due   *time.Time
	Start *time.Time
	End   *time.Time

	RawRRule     string
	RecurrenceID *time.Time
}

// Document is the read-only in-memory model of one parsed calendar,
// grouped by component type. It is built once per extraction run and
// never mutated afterwards.
type Document struct {
	Todos  []Component
	Events []Component
}

// ParseError means the raw text is not a structurally valid iCalendar
// document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("calendar parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseDocument parses a raw iCalendar payload into a Document. Individual
// components that fail to normalize are logged and skipped; a structurally
// broken document fails as a whole with *ParseError.
func ParseDocument(body []byte) (*Document, error) {
	if len(body) == 0 {
		return nil, &ParseError{Err: errors.New("empty calendar body")}
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	doc := &Document{}
	for _, comp := range cal.Components {
		switch v := comp.(type) {
		case *ical.VTodo:
			c, perr := parseComponent(KindTodo, &v.ComponentBase)
			if perr != nil {
				appLog.Error("skipping vtodo", perr, "uid", c.UID)
				continue
			}
			doc.Todos = append(doc.Todos, c)
		case *ical.VEvent:
			c, perr := parseComponent(KindEvent, &v.ComponentBase)
			if perr != nil {
				appLog.Error("skipping vevent", perr, "uid", c.UID)
				continue
			}
			doc.Events = append(doc.Events, c)
		}
	}

	appLog.Debug("calendar parsed", "todos", len(doc.Todos), "events", len(doc.Events))
	return doc, nil
}

func parseComponent(kind Kind, cb *ical.ComponentBase) (Component, error) {
	out := Component{
		Kind:    kind,
		Summary: DefaultSummary,
		Status:  DefaultStatus,
	}

	if p := cb.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := cb.GetProperty(ical.ComponentPropertySummary); p != nil && p.Value != "" {
		out.Summary = p.Value
	}
	if p := cb.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	// STATUS / DUE / RECURRENCE-ID via raw names to avoid depending on
	// which constants the library version exports.
	if p := cb.GetProperty("STATUS"); p != nil && p.Value != "" {
		out.Status = p.Value
	}

	var err error
	if out.Due, err = timeProp(cb, "DUE"); err != nil {
		return out, fmt.Errorf("bad DUE: %w", err)
	}
	if out.Start, err = timeProp(cb, ical.ComponentPropertyDtStart); err != nil {
		return out, fmt.Errorf("bad DTSTART: %w", err)
	}
	if out.End, err = timeProp(cb, ical.ComponentPropertyDtEnd); err != nil {
		return out, fmt.Errorf("bad DTEND: %w", err)
	}
	if out.RecurrenceID, err = timeProp(cb, "RECURRENCE-ID"); err != nil {
		return out, fmt.Errorf("bad RECURRENCE-ID: %w", err)
	}

	if p := cb.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	return out, nil
}

func timeProp(cb *ical.ComponentBase, name ical.ComponentProperty) (*time.Time, error) {
	p := cb.GetProperty(name)
	if p == nil || p.Value == "" {
		return nil, nil
	}
	t, err := parseTimeValue(p.Value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseTimeValue parses the basic iCalendar DATE / DATE-TIME value forms.
// TZID parameter handling is intentionally out of scope; non-UTC values
// are interpreted in local time.
func parseTimeValue(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
