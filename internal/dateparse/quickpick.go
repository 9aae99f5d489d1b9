package dateparse

import "time"

// quickPickLayout is the literal layout quick-pick values are rendered in.
const quickPickLayout = "02.01.2006"

// QuickPick is one entry of the date-selection menu.
type QuickPick struct {
	Value string // DD.MM.YYYY
	Label string // empty for the plain parse-through entry
}

// QuickPicks returns the fixed date menu relative to now: the typed query
// re-rendered as DD.MM.YYYY when it parses, then yesterday, tomorrow,
// in-one-week and today.
func QuickPicks(now time.Time, query string) []QuickPick {
	var picks []QuickPick
	if query != "" {
		if d, err := Parse(query); err == nil {
			picks = append(picks, QuickPick{Value: d.Format(quickPickLayout)})
		}
	}
	day := Midnight(now)
	picks = append(picks,
		QuickPick{Value: day.AddDate(0, 0, -1).Format(quickPickLayout), Label: "Yesterday"},
		QuickPick{Value: day.AddDate(0, 0, 1).Format(quickPickLayout), Label: "Tomorrow"},
		QuickPick{Value: day.AddDate(0, 0, 7).Format(quickPickLayout), Label: "In 1 week"},
		QuickPick{Value: day.Format(quickPickLayout), Label: "Today"},
	)
	return picks
}
