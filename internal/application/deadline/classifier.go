package deadline

import "time"

// Window is a named threshold before a task's due date.
type Window struct {
	Label    string
	Duration time.Duration
}

// Tolerance is the band on each side of a window's duration.
const Tolerance = 5 * time.Minute

// Windows is ordered from the largest duration to the smallest.
var Windows = []Window{
	{Label: "1 day", Duration: 24 * time.Hour},
	{Label: "12 hours", Duration: 12 * time.Hour},
	{Label: "6 hours", Duration: 6 * time.Hour},
	{Label: "3 hours", Duration: 3 * time.Hour},
	{Label: "1 hour", Duration: time.Hour},
}

// Classify returns every window w with 0 < due-now <= w+Tolerance and due-now > w-Tolerance.
// With the default windows and a ten minute tick at most one window matches.
func Classify(now, due time.Time) []Window {
	diff := due.Sub(now)
	if diff <= 0 {
		return nil
	}
	var matched []Window
	for _, w := range Windows {
		if diff <= w.Duration+Tolerance && diff > w.Duration-Tolerance {
			matched = append(matched, w)
		}
	}
	return matched
}

// IsPassed reports whether due is strictly before now. No tolerance applies.
func IsPassed(now, due time.Time) bool {
	return due.Before(now)
}
