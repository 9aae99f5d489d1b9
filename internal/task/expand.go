package task

import (
	"time"

	"github.com/teambition/rrule-go"
)

// maxOccurrences caps how many instants a single rule may generate per
// extraction run, guarding against unbounded or malformed rules.
const maxOccurrences = 100

// expansion is a lazy, forward-only walk over a recurrence rule's
// occurrence instants, starting at the anchor. It stops after
// maxOccurrences generated instants or once an instant reaches dayEnd,
// whichever comes first. Restarting requires a new expansion.
type expansion struct {
	next   rrule.Next
	dayEnd time.Time
	count  int
}

// newExpansion compiles rawRRule anchored at anchor. dayEnd is the
// exclusive end of the target day.
func newExpansion(rawRRule string, anchor, dayEnd time.Time) (*expansion, error) {
	r, err := rrule.StrToRRule(rawRRule)
	if err != nil {
		return nil, err
	}
	r.DTStart(anchor)
	return &expansion{next: r.Iterator(), dayEnd: dayEnd}, nil
}

// Next returns the next occurrence instant, or false once the rule is
// exhausted or either bound is hit.
func (e *expansion) Next() (time.Time, bool) {
	if e.count >= maxOccurrences {
		return time.Time{}, false
	}
	t, ok := e.next()
	if !ok {
		return time.Time{}, false
	}
	e.count++
	if !t.Before(e.dayEnd) {
		return time.Time{}, false
	}
	return t, true
}
