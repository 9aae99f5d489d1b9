// Package render performs literal ${placeholder} substitution of tasks
// into a user-defined template string.
package render

import (
	"strconv"
	"strings"
	"time"

	"icaldump/internal/task"
)

// DefaultTemplate is used when the configuration carries none.
const DefaultTemplate = "${summary} - ${dueDate}\n"

// Task renders one task through the template. Recognized placeholders:
// summary, dueDate, startHour, startMinute, startSecond, endHour,
// endMinute, endSecond, duration (whole minutes between start and end),
// status, description, isRecurring and type. Placeholders backed by a
// missing instant render as empty strings; anything else in the template
// passes through untouched.
func Task(template string, t task.Task) string {
	return strings.NewReplacer(
		"${summary}", t.Summary,
		"${dueDate}", formatInstant(t.DueDate),

		"${startHour}", formatClock(t.StartDate, "15"),
		"${startMinute}", formatClock(t.StartDate, "04"),
		"${startSecond}", formatClock(t.StartDate, "05"),

		"${endHour}", formatClock(t.EndDate, "15"),
		"${endMinute}", formatClock(t.EndDate, "04"),
		"${endSecond}", formatClock(t.EndDate, "05"),

		"${duration}", duration(t.StartDate, t.EndDate),

		"${status}", t.Status,
		"${description}", t.Description,
		"${isRecurring}", strconv.FormatBool(t.IsRecurring),
		"${type}", string(t.Kind),
	).Replace(template)
}

// Tasks renders the whole list back to back.
func Tasks(template string, tasks []task.Task) string {
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(Task(template, t))
	}
	return b.String()
}

func formatInstant(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

func formatClock(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}

func duration(start, end *time.Time) string {
	if start == nil || end == nil {
		return ""
	}
	return strconv.Itoa(int(end.Sub(*start).Minutes()))
}
