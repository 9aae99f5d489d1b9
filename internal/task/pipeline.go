package task

import (
	"time"

	"icaldump/internal/dateparse"
	"icaldump/internal/ics"
	appLog "icaldump/internal/log"
)

// Extract is the pipeline entry point: it resolves the target day from
// dateStr (empty means today), parses the calendar text, resolves every
// component against the day and returns the tasks sorted by start time.
//
// Date and calendar parse errors propagate; a partial task list is never
// returned. Each call builds its own document and indexes and holds no
// state afterwards, so concurrent calls are independent.
func Extract(icalText string, dateStr string) ([]Task, error) {
	target := dateparse.Midnight(time.Now())
	if dateStr != "" {
		var err error
		if target, err = dateparse.Parse(dateStr); err != nil {
			return nil, err
		}
	}

	doc, err := ics.ParseDocument([]byte(icalText))
	if err != nil {
		return nil, err
	}

	idx := buildIndexes(doc)
	appLog.Debug("indexes built",
		"series", len(idx.series), "exceptions", len(idx.exceptions))

	tasks := newResolver(target, idx).resolveAll(doc)
	SortByStart(tasks)

	appLog.Info("tasks extracted",
		"day", target.Format("2006-01-02"), "count", len(tasks))
	return tasks, nil
}
