package render

import (
	"testing"
	"time"

	"icaldump/internal/ics"
	"icaldump/internal/task"
)

func tp(t time.Time) *time.Time { return &t }

func TestTaskSubstitutesVocabulary(t *testing.T) {
	start := time.Date(2024, time.June, 1, 9, 5, 30, 0, time.Local)
	end := time.Date(2024, time.June, 1, 10, 35, 0, 0, time.Local)

	tk := task.Task{
		Summary:     "Standup",
		DueDate:     tp(start),
		StartDate:   tp(start),
		EndDate:     tp(end),
		Status:      "CONFIRMED",
		Description: "daily sync",
		IsRecurring: true,
		Kind:        ics.KindEvent,
	}

	tests := []struct {
		template string
		want     string
	}{
		{"${summary}", "Standup"},
		{"${startHour}:${startMinute}:${startSecond}", "09:05:30"},
		{"${endHour}:${endMinute}", "10:35"},
		{"${duration}", "89"},
		{"${status}", "CONFIRMED"},
		{"${description}", "daily sync"},
		{"${isRecurring}", "true"},
		{"${type}", "VEVENT"},
		{"${dueDate}", "2024-06-01 09:05"},
		{"plain text stays", "plain text stays"},
		{"${unknown}", "${unknown}"},
		{"- ${summary} (${duration}m)", "- Standup (89m)"},
	}

	for _, tt := range tests {
		if got := Task(tt.template, tk); got != tt.want {
			t.Errorf("Task(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestTaskMissingInstantsRenderEmpty(t *testing.T) {
	tk := task.Task{Summary: "Someday", Kind: ics.KindTodo}

	if got := Task("${startHour}|${endMinute}|${duration}|${dueDate}", tk); got != "|||" {
		t.Errorf("missing instants rendered %q, want empty fields", got)
	}
	if got := Task("${isRecurring}", tk); got != "false" {
		t.Errorf("isRecurring = %q, want false", got)
	}
}

func TestTasksConcatenates(t *testing.T) {
	tasks := []task.Task{
		{Summary: "a", Kind: ics.KindTodo},
		{Summary: "b", Kind: ics.KindTodo},
	}
	if got := Tasks("${summary};", tasks); got != "a;b;" {
		t.Errorf("Tasks = %q, want %q", got, "a;b;")
	}
}
