package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/store"
)

// EffectiveWindow derives the concrete interval a budget period covers. The
// start is normalized to midnight; the end is the last millisecond before
// the next cycle would begin, so back-to-back periods never touch.
func EffectiveWindow(b domain.Budget) (start, end time.Time) {
	start = midnight(b.StartDate)

	var next time.Time
	switch b.Kind {
	case domain.PeriodWeekly:
		next = start.AddDate(0, 0, 7)
	case domain.PeriodYearly:
		next = start.AddDate(1, 0, 0)
	default:
		next = start.AddDate(0, 1, 0)
	}
	return start, next.Add(-time.Millisecond)
}

// Overlaps applies the half-open comparison between two budget periods:
// exactly adjacent periods, where one ends the millisecond before the other
// starts, do not overlap.
func Overlaps(a, b domain.Budget) bool {
	aStart, aEnd := EffectiveWindow(a)
	bStart, bEnd := EffectiveWindow(b)
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapError names the existing budget period the candidate collides with.
type OverlapError struct {
	ExistingID string
	Start      time.Time
	End        time.Time
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("budget period overlaps existing budget %s (%s to %s)",
		e.ExistingID, e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// Validator rejects candidate budget periods that overlap an existing budget
// for the same category.
type Validator struct {
	store store.Store
}

// NewValidator creates an overlap validator backed by the given record
// store.
func NewValidator(s store.Store) *Validator {
	return &Validator{store: s}
}

// Validate returns an OverlapError when the candidate's effective window
// intersects any existing budget of the same category, nil otherwise.
func (v *Validator) Validate(ctx context.Context, candidate domain.Budget) error {
	existing, err := v.store.ListBudgetsForCategory(ctx, candidate.UserID, candidate.CategoryID)
	if err != nil {
		return fmt.Errorf("listing budgets for category %s: %w", candidate.CategoryID, err)
	}

	for _, b := range existing {
		if b.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, b) {
			start, end := EffectiveWindow(b)
			return &OverlapError{ExistingID: b.ID, Start: start, End: end}
		}
	}
	return nil
}
