package importer

import "fmt"

// RowStatus tags the outcome of processing one statement row.
type RowStatus int

const (
	// RowImported means a transaction record was created for the row.
	RowImported RowStatus = iota
	// RowSkipped means the row was dropped with a recorded reason.
	RowSkipped
)

// RowResult is the tagged outcome of one row. The reducer folds a sequence
// of these into the final Outcome, so no shared mutable accumulator is
// threaded through the row loop.
type RowResult struct {
	Line        int
	Status      RowStatus
	Err         error // reason, when skipped
	NewCategory bool
	NewAccount  bool
}

// Outcome accumulates the result of one whole-file import. It is finalized
// before being returned; callers never observe a partially filled outcome.
type Outcome struct {
	ImportedCategories   int      `json:"importedCategories"`
	ImportedAccounts     int      `json:"importedAccounts"`
	ImportedTransactions int      `json:"importedTransactions"`
	RowErrors            []string `json:"rowErrors"`
	Success              bool     `json:"success"`
}

// Finalize reduces per-row results into the outcome. Success is false only
// on total failure: errors occurred and not a single transaction made it in.
// Partial failure keeps Success true so callers can surface
// "N imported, M skipped".
func Finalize(results []RowResult) *Outcome {
	out := &Outcome{RowErrors: []string{}}
	for _, r := range results {
		switch r.Status {
		case RowImported:
			out.ImportedTransactions++
			if r.NewCategory {
				out.ImportedCategories++
			}
			if r.NewAccount {
				out.ImportedAccounts++
			}
		case RowSkipped:
			out.RowErrors = append(out.RowErrors, fmt.Sprintf("line %d: %v", r.Line, r.Err))
		}
	}
	out.Success = len(out.RowErrors) == 0 || out.ImportedTransactions > 0
	return out
}

// fatalOutcome finalizes an import that failed before any row was touched.
func fatalOutcome(err error) *Outcome {
	return &Outcome{
		RowErrors: []string{err.Error()},
		Success:   false,
	}
}
