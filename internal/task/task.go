// Package task implements the occurrence-selection engine: given a parsed
// calendar document and a target day, it decides which concrete to-do and
// event occurrences fall on that day, with recurrence rules expanded and
// exception overrides applied.
package task

import (
	"time"

	"icaldump/internal/ics"
)

// Task is one concrete occurrence on the target day, never a rule.
// It is immutable once constructed.
type Task struct {
	Summary     string
	DueDate     *time.Time
	StartDate   *time.Time
	EndDate     *time.Time
	Status      string
	Description string
	IsRecurring bool
	Kind        ics.Kind
	UID         string

	// RecurrenceID is the canonical form of the overridden instant when
	// this task came from an exception component.
	RecurrenceID string
	IsException  bool
}

// instanceKey identifies one occurrence of one series. RECURRENCE-ID
// values and rule-generated instants are both canonicalized to UTC so
// they collide even when expressed in different zones.
func instanceKey(uid string, t time.Time) string {
	return uid + "_" + t.UTC().Format(time.RFC3339)
}
