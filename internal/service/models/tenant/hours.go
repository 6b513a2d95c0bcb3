package tenant

import "time"

// Window is a half-open [Start, End) span expressed in minutes after
// midnight, e.g. a 15:00-17:00 break is {900, 1020}.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (w Window) contains(minute int) bool {
	return minute >= w.Start && minute < w.End
}

// Day holds one weekday's opening schedule. A day with Closed set, or with
// an empty [Open, Close) span, never counts as open.
type Day struct {
	Closed bool     `json:"closed"`
	Open   int      `json:"open"`
	Close  int      `json:"close"`
	Breaks []Window `json:"breaks,omitempty"`
}

func (d Day) hasWindow() bool {
	return !d.Closed && d.Open < d.Close
}

// Hours maps weekdays to their schedule. Times are wall-clock minutes in
// the tenant's own timezone, so callers convert instants with time.In first.
type Hours map[time.Weekday]Day

// IsOpen reports whether the business is open at now. A missing or closed
// weekday entry is closed, as is any instant outside [Open, Close) or
// inside a break window.
func (h Hours) IsOpen(now time.Time) bool {
	day, ok := h[now.Weekday()]
	if !ok || !day.hasWindow() {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	if minute < day.Open || minute >= day.Close {
		return false
	}
	for _, b := range day.Breaks {
		if b.contains(minute) {
			return false
		}
	}

	return true
}

// NextOpenTime scans up to seven days ahead and returns the first opening
// instant still in the future, or nil when no day within the week opens.
// Today's opening is skipped if it has already passed.
func (h Hours) NextOpenTime(now time.Time) *time.Time {
	for i := 0; i < 7; i++ {
		d := now.AddDate(0, 0, i)
		day, ok := h[d.Weekday()]
		if !ok || !day.hasWindow() {
			continue
		}

		open := time.Date(d.Year(), d.Month(), d.Day(), day.Open/60, day.Open%60, 0, 0, now.Location())
		if open.After(now) {
			return &open
		}
	}

	return nil
}
