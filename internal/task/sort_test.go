package task

import (
	"testing"
	"time"
)

func TestSortByStart(t *testing.T) {
	at := func(h int) *time.Time {
		v := time.Date(2024, time.June, 1, h, 0, 0, 0, time.Local)
		return &v
	}

	tasks := []Task{
		{Summary: "ten", StartDate: at(10)},
		{Summary: "undated-a"},
		{Summary: "nine-first", StartDate: at(9)},
		{Summary: "undated-b"},
		{Summary: "nine-second", StartDate: at(9)},
	}

	SortByStart(tasks)

	want := []string{"nine-first", "nine-second", "ten", "undated-a", "undated-b"}
	for i, w := range want {
		if tasks[i].Summary != w {
			t.Errorf("position %d = %q, want %q", i, tasks[i].Summary, w)
		}
	}
}

func TestSortByStartAllUndatedKeepsOrder(t *testing.T) {
	tasks := []Task{{Summary: "a"}, {Summary: "b"}, {Summary: "c"}}
	SortByStart(tasks)
	for i, w := range []string{"a", "b", "c"} {
		if tasks[i].Summary != w {
			t.Errorf("position %d = %q, want %q", i, tasks[i].Summary, w)
		}
	}
}
