package tenant

import (
	"testing"
	"time"
)

// mondayAt builds an instant on Monday 2025-06-02 in UTC.
func mondayAt(hour, min int) time.Time {
	return time.Date(2025, 6, 2, hour, min, 0, 0, time.UTC)
}

// standardWeek opens every day 11:00-22:00 with a 15:00-17:00 break.
func standardWeek() Hours {
	day := Day{Open: 11 * 60, Close: 22 * 60, Breaks: []Window{{Start: 15 * 60, End: 17 * 60}}}

	h := Hours{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		h[wd] = day
	}
	return h
}

func TestHoursIsOpen(t *testing.T) {
	tests := []struct {
		name string
		h    Hours
		now  time.Time
		want bool
	}{
		{name: "noon is open", h: standardWeek(), now: mondayAt(12, 0), want: true},
		{name: "inside break is closed", h: standardWeek(), now: mondayAt(16, 0), want: false},
		{name: "after close is closed", h: standardWeek(), now: mondayAt(23, 0), want: false},
		{name: "before open is closed", h: standardWeek(), now: mondayAt(10, 59), want: false},
		{name: "opening minute is open", h: standardWeek(), now: mondayAt(11, 0), want: true},
		{name: "closing minute is closed", h: standardWeek(), now: mondayAt(22, 0), want: false},
		{name: "break start is closed", h: standardWeek(), now: mondayAt(15, 0), want: false},
		{name: "break end is open again", h: standardWeek(), now: mondayAt(17, 0), want: true},
		{name: "closed day", h: Hours{time.Monday: {Closed: true, Open: 11 * 60, Close: 22 * 60}}, now: mondayAt(12, 0), want: false},
		{name: "missing weekday entry", h: Hours{time.Tuesday: {Open: 11 * 60, Close: 22 * 60}}, now: mondayAt(12, 0), want: false},
		{name: "empty window", h: Hours{time.Monday: {}}, now: mondayAt(0, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.IsOpen(tt.now); got != tt.want {
				t.Errorf("IsOpen(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestHoursNextOpenTime(t *testing.T) {
	tests := []struct {
		name string
		h    Hours
		now  time.Time
		want *time.Time
	}{
		{
			name: "before opening returns today",
			h:    standardWeek(),
			now:  mondayAt(9, 0),
			want: ptr(mondayAt(11, 0)),
		},
		{
			name: "after opening returns tomorrow",
			h:    standardWeek(),
			now:  mondayAt(12, 0),
			want: ptr(mondayAt(11, 0).AddDate(0, 0, 1)),
		},
		{
			name: "exactly at opening returns tomorrow",
			h:    standardWeek(),
			now:  mondayAt(11, 0),
			want: ptr(mondayAt(11, 0).AddDate(0, 0, 1)),
		},
		{
			name: "skips closed days",
			h:    Hours{time.Friday: {Open: 11 * 60, Close: 22 * 60}},
			now:  mondayAt(12, 0),
			want: ptr(time.Date(2025, 6, 6, 11, 0, 0, 0, time.UTC)),
		},
		{
			name: "everything closed returns nil",
			h:    Hours{},
			now:  mondayAt(12, 0),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.h.NextOpenTime(tt.now)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("NextOpenTime(%v) = %v, want %v", tt.now, got, tt.want)
			}
			if got != nil && !got.Equal(*tt.want) {
				t.Errorf("NextOpenTime(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestTenantCanAcceptOrders(t *testing.T) {
	base := func() Tenant {
		return Tenant{
			Active:       true,
			Subscription: Subscription{Plan: "standard", Status: SubscriptionActive},
			Hours:        standardWeek(),
			Timezone:     "UTC",
		}
	}
	openNow := mondayAt(12, 0)
	closedNow := mondayAt(23, 0)
	expired := mondayAt(0, 0)

	tests := []struct {
		name          string
		mutate        func(*Tenant)
		now           time.Time
		monthlyOrders int
		want          bool
	}{
		{name: "active and open", mutate: func(*Tenant) {}, now: openNow, want: true},
		{name: "inactive tenant", mutate: func(tn *Tenant) { tn.Active = false }, now: openNow, want: false},
		{
			name:   "suspended subscription",
			mutate: func(tn *Tenant) { tn.Subscription.Status = SubscriptionSuspended },
			now:    openNow,
			want:   false,
		},
		{
			name:   "expired trial",
			mutate: func(tn *Tenant) { tn.Subscription = Subscription{Status: SubscriptionTrial, TrialExpiresAt: &expired} },
			now:    openNow,
			want:   false,
		},
		{
			name:   "trial without expiry",
			mutate: func(tn *Tenant) { tn.Subscription = Subscription{Status: SubscriptionTrial} },
			now:    openNow,
			want:   true,
		},
		{
			name:          "monthly limit reached",
			mutate:        func(tn *Tenant) { tn.Subscription.MonthlyOrderLimit = 100 },
			now:           openNow,
			monthlyOrders: 100,
			want:          false,
		},
		{
			name:          "zero limit is unlimited",
			mutate:        func(*Tenant) {},
			now:           openNow,
			monthlyOrders: 10_000,
			want:          true,
		},
		{name: "closed without auto-accept", mutate: func(*Tenant) {}, now: closedNow, want: false},
		{
			name:   "closed with auto-accept",
			mutate: func(tn *Tenant) { tn.AutoAcceptOrders = true },
			now:    closedNow,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := base()
			tt.mutate(&tn)
			if got := tn.CanAcceptOrders(tt.now, tt.monthlyOrders); got != tt.want {
				t.Errorf("CanAcceptOrders(%v, %d) = %v, want %v", tt.now, tt.monthlyOrders, got, tt.want)
			}
		})
	}
}

func TestTenantIsOpenUsesTimezone(t *testing.T) {
	tn := Tenant{Hours: standardWeek(), Timezone: "Europe/Zurich"}

	// 09:30 UTC on 2025-06-02 is 11:30 in Zurich (CEST), inside opening hours.
	if !tn.IsOpen(time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)) {
		t.Error("expected business open at 11:30 local time")
	}
	// 21:30 UTC is 23:30 local, after close.
	if tn.IsOpen(time.Date(2025, 6, 2, 21, 30, 0, 0, time.UTC)) {
		t.Error("expected business closed at 23:30 local time")
	}
}

func ptr(t time.Time) *time.Time { return &t }
