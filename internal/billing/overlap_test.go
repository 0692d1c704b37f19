package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/store/memory"
)

func budget(id string, kind domain.PeriodKind, start time.Time) domain.Budget {
	return domain.Budget{
		ID:         id,
		UserID:     "user-1",
		CategoryID: "cat-1",
		Kind:       kind,
		Amount:     decimal.NewFromInt(500),
		StartDate:  start,
	}
}

func TestEffectiveWindow(t *testing.T) {
	tests := []struct {
		name  string
		kind  domain.PeriodKind
		start time.Time
		end   time.Time
	}{
		{
			name:  "monthly ends the millisecond before the next cycle",
			kind:  domain.PeriodMonthly,
			start: date(2024, time.January, 1),
			end:   time.Date(2024, time.January, 31, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:  "weekly spans seven days",
			kind:  domain.PeriodWeekly,
			start: date(2024, time.January, 1),
			end:   time.Date(2024, time.January, 7, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:  "yearly spans one calendar year",
			kind:  domain.PeriodYearly,
			start: date(2024, time.March, 15),
			end:   time.Date(2025, time.March, 14, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name:  "start time of day normalized to midnight",
			kind:  domain.PeriodMonthly,
			start: time.Date(2024, time.January, 1, 14, 30, 0, 0, time.UTC),
			end:   time.Date(2024, time.January, 31, 23, 59, 59, 999000000, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := EffectiveWindow(budget("b", tt.kind, tt.start))
			if !start.Equal(midnight(tt.start)) {
				t.Errorf("start = %v; want %v", start, midnight(tt.start))
			}
			if !end.Equal(tt.end) {
				t.Errorf("end = %v; want %v", end, tt.end)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a        domain.Budget
		b        domain.Budget
		expected bool
	}{
		{
			name:     "monthly periods two weeks apart overlap",
			a:        budget("a", domain.PeriodMonthly, date(2024, time.January, 1)),
			b:        budget("b", domain.PeriodMonthly, date(2024, time.January, 15)),
			expected: true,
		},
		{
			name:     "back-to-back monthly periods do not overlap",
			a:        budget("a", domain.PeriodMonthly, date(2024, time.January, 1)),
			b:        budget("b", domain.PeriodMonthly, date(2024, time.February, 1)),
			expected: false,
		},
		{
			name:     "back-to-back weekly periods do not overlap",
			a:        budget("a", domain.PeriodWeekly, date(2024, time.January, 1)),
			b:        budget("b", domain.PeriodWeekly, date(2024, time.January, 8)),
			expected: false,
		},
		{
			name:     "weekly inside a monthly overlaps",
			a:        budget("a", domain.PeriodMonthly, date(2024, time.January, 1)),
			b:        budget("b", domain.PeriodWeekly, date(2024, time.January, 10)),
			expected: true,
		},
		{
			name:     "identical starts overlap",
			a:        budget("a", domain.PeriodYearly, date(2024, time.January, 1)),
			b:        budget("b", domain.PeriodYearly, date(2024, time.January, 1)),
			expected: true,
		},
		{
			name:     "disjoint periods do not overlap",
			a:        budget("a", domain.PeriodWeekly, date(2024, time.January, 1)),
			b:        budget("b", domain.PeriodWeekly, date(2024, time.March, 1)),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.expected {
				t.Errorf("Overlaps() = %v; want %v", got, tt.expected)
			}
			// Overlap is symmetric.
			if got := Overlaps(tt.b, tt.a); got != tt.expected {
				t.Errorf("Overlaps() reversed = %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestValidatorRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	existing := budget("existing", domain.PeriodMonthly, date(2024, time.January, 1))
	if err := s.CreateBudget(ctx, &existing); err != nil {
		t.Fatalf("seeding budget: %v", err)
	}

	v := NewValidator(s)
	candidate := budget("candidate", domain.PeriodMonthly, date(2024, time.January, 15))

	err := v.Validate(ctx, candidate)
	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected *OverlapError, got %v", err)
	}
	if overlap.ExistingID != "existing" {
		t.Errorf("ExistingID = %q; want %q", overlap.ExistingID, "existing")
	}
	if !overlap.Start.Equal(date(2024, time.January, 1)) {
		t.Errorf("Start = %v; want 2024-01-01", overlap.Start)
	}
}

func TestValidatorAcceptsAdjacentAndUnrelated(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	existing := budget("existing", domain.PeriodMonthly, date(2024, time.January, 1))
	if err := s.CreateBudget(ctx, &existing); err != nil {
		t.Fatalf("seeding budget: %v", err)
	}

	v := NewValidator(s)

	adjacent := budget("adjacent", domain.PeriodMonthly, date(2024, time.February, 1))
	if err := v.Validate(ctx, adjacent); err != nil {
		t.Errorf("back-to-back period should validate, got %v", err)
	}

	otherCategory := budget("other", domain.PeriodMonthly, date(2024, time.January, 15))
	otherCategory.CategoryID = "cat-2"
	if err := v.Validate(ctx, otherCategory); err != nil {
		t.Errorf("a different category never conflicts, got %v", err)
	}
}

func TestValidatorIgnoresSelf(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	existing := budget("same-id", domain.PeriodMonthly, date(2024, time.January, 1))
	if err := s.CreateBudget(ctx, &existing); err != nil {
		t.Fatalf("seeding budget: %v", err)
	}

	if err := NewValidator(s).Validate(ctx, existing); err != nil {
		t.Errorf("a budget must not conflict with itself, got %v", err)
	}
}
