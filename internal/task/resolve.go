package task

import (
	"time"

	"icaldump/internal/dateparse"
	"icaldump/internal/ics"
	appLog "icaldump/internal/log"
)

// path is the closed set of ways a component can be emitted. Every
// component takes exactly one path per run.
type path int

const (
	pathException path = iota // carries a RECURRENCE-ID
	pathRecurring             // owns a recurrence rule
	pathPlain                 // neither
)

func classify(c *ics.Component) path {
	switch {
	case c.RecurrenceID != nil:
		return pathException
	case c.RawRRule != "":
		return pathRecurring
	default:
		return pathPlain
	}
}

// indexes holds the per-run lookup state: series owners by UID and
// exception overrides by UID + overridden instant. Both are rebuilt from
// scratch on every extraction and never persisted.
type indexes struct {
	series     map[string]*ics.Component
	exceptions map[string]*ics.Component
}

func buildIndexes(doc *ics.Document) *indexes {
	idx := &indexes{
		series:     make(map[string]*ics.Component),
		exceptions: make(map[string]*ics.Component),
	}
	for _, group := range [][]ics.Component{doc.Todos, doc.Events} {
		for i := range group {
			c := &group[i]
			if c.UID == "" {
				continue
			}
			if c.RecurrenceID != nil {
				idx.exceptions[instanceKey(c.UID, *c.RecurrenceID)] = c
			} else if c.RawRRule != "" {
				idx.series[c.UID] = c
			}
		}
	}
	return idx
}

// resolver selects the occurrences of one target day.
type resolver struct {
	target time.Time // local midnight of the target day
	dayEnd time.Time // exclusive end of the target day
	idx    *indexes
}

func newResolver(target time.Time, idx *indexes) *resolver {
	return &resolver{
		target: target,
		dayEnd: target.AddDate(0, 0, 1),
		idx:    idx,
	}
}

// resolveAll walks all to-dos, then all events, in input order, and
// returns the unsorted task list.
func (r *resolver) resolveAll(doc *ics.Document) []Task {
	var tasks []Task
	for _, group := range [][]ics.Component{doc.Todos, doc.Events} {
		for i := range group {
			if t := r.resolve(&group[i]); t != nil {
				tasks = append(tasks, *t)
			}
		}
	}
	return tasks
}

// resolve emits at most one Task for a component. The exception check
// always precedes the rule check, which precedes the plain check.
func (r *resolver) resolve(c *ics.Component) *Task {
	switch classify(c) {
	case pathException:
		return r.resolveException(c)
	case pathRecurring:
		return r.resolveRecurring(c)
	default:
		return r.resolvePlain(c)
	}
}

// resolveException emits the override when its overridden instant falls
// on the target day. Whether it matches or not, the component is done:
// an exception is never additionally treated as a plain item.
func (r *resolver) resolveException(c *ics.Component) *Task {
	if !dateparse.SameDay(*c.RecurrenceID, r.target) {
		return nil
	}
	return &Task{
		Summary:      c.Summary,
		DueDate:      c.Due,
		StartDate:    c.Start,
		EndDate:      c.End,
		Status:       c.Status,
		Description:  c.Description,
		IsRecurring:  true,
		Kind:         c.Kind,
		UID:          c.UID,
		RecurrenceID: c.RecurrenceID.UTC().Format(time.RFC3339),
		IsException:  true,
	}
}

// resolveRecurring expands the component's rule from its anchor and emits
// the first same-day occurrence that is not suppressed by an exception
// override. A malformed rule skips only this component.
func (r *resolver) resolveRecurring(c *ics.Component) *Task {
	anchor := c.Start
	if anchor == nil {
		anchor = c.Due
	}
	if anchor == nil {
		return nil
	}

	exp, err := newExpansion(c.RawRRule, *anchor, r.dayEnd)
	if err != nil {
		appLog.Error("skipping component with malformed recurrence rule", err,
			"uid", c.UID, "rrule", c.RawRRule)
		return nil
	}

	for {
		occ, ok := exp.Next()
		if !ok {
			return nil
		}
		if !dateparse.SameDay(occ, r.target) {
			continue
		}
		if _, overridden := r.idx.exceptions[instanceKey(c.UID, occ)]; overridden {
			// The exception component emits its own task; keep pulling in
			// case another occurrence still falls on the day.
			continue
		}
		return &Task{
			Summary:     c.Summary,
			DueDate:     &occ,
			StartDate:   c.Start,
			EndDate:     c.End,
			Status:      c.Status,
			Description: c.Description,
			IsRecurring: true,
			Kind:        c.Kind,
			UID:         c.UID,
		}
	}
}

// resolvePlain emits a dated component when its first non-nil instant
// (due, else start, else end) falls on the target day. Undated to-dos are
// perpetually active and always emitted; undated events never are.
func (r *resolver) resolvePlain(c *ics.Component) *Task {
	relevant := c.Due
	if relevant == nil {
		relevant = c.Start
	}
	if relevant == nil {
		relevant = c.End
	}

	if relevant != nil {
		if !dateparse.SameDay(*relevant, r.target) {
			return nil
		}
		return &Task{
			Summary:     c.Summary,
			DueDate:     relevant,
			StartDate:   c.Start,
			EndDate:     c.End,
			Status:      c.Status,
			Description: c.Description,
			Kind:        c.Kind,
			UID:         c.UID,
		}
	}

	if c.Kind != ics.KindTodo {
		return nil
	}
	return &Task{
		Summary:     c.Summary,
		Status:      c.Status,
		Description: c.Description,
		Kind:        c.Kind,
		UID:         c.UID,
	}
}
