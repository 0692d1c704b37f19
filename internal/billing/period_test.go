package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriod(t *testing.T) {
	tests := []struct {
		name     string
		startDay int
		endDay   int
		ref      time.Time
		start    time.Time
		end      time.Time
	}{
		{
			name:     "reference inside a same-month window",
			startDay: 1, endDay: 30,
			ref:   date(2024, time.March, 15),
			start: date(2024, time.March, 1),
			end:   date(2024, time.March, 30),
		},
		{
			name:     "wraparound window, reference before the end anchor",
			startDay: 25, endDay: 10,
			ref:   date(2024, time.February, 5),
			start: date(2024, time.January, 25),
			end:   date(2024, time.February, 10),
		},
		{
			name:     "wraparound window, reference after the start anchor",
			startDay: 25, endDay: 10,
			ref:   date(2024, time.February, 27),
			start: date(2024, time.February, 25),
			end:   date(2024, time.March, 10),
		},
		{
			name:     "end anchor clamped to leap february",
			startDay: 28, endDay: 31,
			ref:   date(2024, time.February, 20),
			start: date(2024, time.January, 28),
			end:   date(2024, time.February, 29),
		},
		{
			name:     "end anchor clamped to non-leap february",
			startDay: 28, endDay: 31,
			ref:   date(2023, time.February, 20),
			start: date(2023, time.January, 28),
			end:   date(2023, time.February, 28),
		},
		{
			name:     "window straddling the year boundary",
			startDay: 25, endDay: 10,
			ref:   date(2024, time.January, 3),
			start: date(2023, time.December, 25),
			end:   date(2024, time.January, 10),
		},
		{
			name:     "reference past the end anchor rolls into the next cycle",
			startDay: 1, endDay: 25,
			ref:   date(2024, time.March, 28),
			start: date(2024, time.March, 1),
			end:   date(2024, time.April, 25),
		},
		{
			name:     "zero anchors fall back to the calendar month",
			startDay: 0, endDay: 0,
			ref:   date(2024, time.February, 10),
			start: date(2024, time.February, 1),
			end:   date(2024, time.February, 29),
		},
		{
			name:     "reference time of day is ignored",
			startDay: 1, endDay: 30,
			ref:   time.Date(2024, time.March, 15, 23, 59, 59, 0, time.UTC),
			start: date(2024, time.March, 1),
			end:   date(2024, time.March, 30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Period(tt.startDay, tt.endDay, tt.ref)
			if !got.Start.Equal(tt.start) {
				t.Errorf("Start = %v; want %v", got.Start, tt.start)
			}
			if !got.End.Equal(tt.end) {
				t.Errorf("End = %v; want %v", got.End, tt.end)
			}
		})
	}
}

func TestWindowContains(t *testing.T) {
	w := Window{Start: date(2024, time.January, 25), End: date(2024, time.February, 10)}

	tests := []struct {
		name     string
		t        time.Time
		expected bool
	}{
		{name: "inside", t: date(2024, time.February, 1), expected: true},
		{name: "start boundary inclusive", t: date(2024, time.January, 25), expected: true},
		{name: "end boundary inclusive", t: date(2024, time.February, 10), expected: true},
		{name: "before", t: date(2024, time.January, 24), expected: false},
		{name: "after", t: date(2024, time.February, 11), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.t); got != tt.expected {
				t.Errorf("Contains(%v) = %v; want %v", tt.t, got, tt.expected)
			}
		})
	}
}
