// Package importer orchestrates statement ingestion: tokenize, resolve
// columns, normalize fields, resolve transaction kind, and reconcile each
// row against the record store. Rows are processed strictly in file order
// and a failed row never aborts the batch; statement files routinely carry
// trailing totals and blank separators, and failing the whole upload on one
// bad line would make batch imports useless.
package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/finata-app/finata/internal/detect"
	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/statement"
	"github.com/finata-app/finata/internal/store"
)

// DefaultCategoryName is used for rows whose statement carries no category
// column.
const DefaultCategoryName = "Outros"

// sampleLineCount is how many raw lines the institution detector sees.
const sampleLineCount = 5

// Importer runs the ingestion pipeline against a record store. One upload is
// handled top to bottom by one call; there is no internal parallelism
// because row ordering and line numbers in errors depend on sequential
// processing.
type Importer struct {
	store store.Store
	log   zerolog.Logger
}

// New creates an importer backed by the given record store.
func New(s store.Store, log zerolog.Logger) *Importer {
	return &Importer{store: s, log: log}
}

// Options scope one import call.
type Options struct {
	UserID string
	CardID string // optional; tags every imported row
}

// Import ingests one uploaded statement file. The returned outcome is always
// non-nil and carries counts plus every row error. A non-nil error is
// returned only for file-level failures (empty input, missing required
// columns), which finalize with zero imports before any row is touched.
func (im *Importer) Import(ctx context.Context, raw []byte, opts Options) (*Outcome, error) {
	if opts.UserID == "" {
		err := fmt.Errorf("user ID is required")
		return fatalOutcome(err), err
	}

	text, err := DecodeText(raw)
	if err != nil {
		return fatalOutcome(err), err
	}

	rows, err := statement.Parse(text)
	if err != nil {
		return fatalOutcome(err), err
	}

	header := rows[0]
	cols := statement.ResolveColumns(header.Fields)
	if err := cols.RequireColumns(header.Fields); err != nil {
		return fatalOutcome(err), err
	}

	detection := detect.Detect(header.Fields, sampleLines(text))
	convention := detect.Convention(detection.Institution)

	im.log.Info().
		Str("user", opts.UserID).
		Str("institution", string(detection.Institution)).
		Float64("confidence", detection.Confidence).
		Int("rows", len(rows)-1).
		Msg("starting statement import")

	results := make([]RowResult, 0, len(rows)-1)
	for _, row := range rows[1:] {
		result := im.processRow(ctx, row, cols, convention, opts)
		if result.Status == RowSkipped {
			im.log.Warn().Int("line", result.Line).Err(result.Err).Msg("row skipped")
		}
		results = append(results, result)
	}

	outcome := Finalize(results)
	im.log.Info().
		Int("transactions", outcome.ImportedTransactions).
		Int("categories", outcome.ImportedCategories).
		Int("accounts", outcome.ImportedAccounts).
		Int("errors", len(outcome.RowErrors)).
		Msg("statement import finished")
	return outcome, nil
}

// processRow handles a single row independently of its neighbors. Every
// failure is folded into the result: parse problems as their sentinel
// errors, store failures wrapped as row processing failures.
func (im *Importer) processRow(ctx context.Context, row statement.Row, cols statement.ColumnMap, conv statement.SignConvention, opts Options) RowResult {
	skip := func(err error) RowResult {
		return RowResult{Line: row.Line, Status: RowSkipped, Err: err}
	}

	rawDate := fieldAt(row.Fields, cols.Date)
	rawDescription := fieldAt(row.Fields, cols.Description)
	rawAmount := fieldAt(row.Fields, cols.Amount)
	if rawDate == "" || rawDescription == "" || rawAmount == "" {
		return skip(statement.ErrIncompleteRow)
	}

	date, err := statement.ParseDate(rawDate)
	if err != nil {
		return skip(err)
	}
	signed, err := statement.ParseAmount(rawAmount)
	if err != nil {
		return skip(err)
	}

	kind, magnitude := statement.ResolveKind(signed, rawDescription, fieldAt(row.Fields, cols.Type), conv)

	categoryName := fieldAt(row.Fields, cols.Category)
	if categoryName == "" {
		categoryName = DefaultCategoryName
	}

	normalized, err := domain.NewNormalizedTransaction(
		date, rawDescription, magnitude, kind, categoryName, fieldAt(row.Fields, cols.Account))
	if err != nil {
		return skip(err)
	}

	category, createdCategory, err := im.findOrCreateCategory(ctx, opts.UserID, normalized.CategoryName)
	if err != nil {
		return skip(fmt.Errorf("row processing failed: %w", err))
	}

	account, createdAccount, err := im.resolveAccount(ctx, opts.UserID, normalized.AccountName)
	if err != nil {
		return skip(fmt.Errorf("row processing failed: %w", err))
	}

	tx := &domain.Transaction{
		ID:          uuid.New().String(),
		UserID:      opts.UserID,
		Date:        normalized.Date,
		Description: normalized.Description,
		Amount:      normalized.Amount,
		Kind:        normalized.Kind,
		CategoryID:  category.ID,
		AccountID:   account.ID,
		CardID:      opts.CardID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := im.store.CreateTransaction(ctx, tx); err != nil {
		return skip(fmt.Errorf("row processing failed: %w", err))
	}

	return RowResult{
		Line:        row.Line,
		Status:      RowImported,
		NewCategory: createdCategory,
		NewAccount:  createdAccount,
	}
}

// findOrCreateCategory resolves a category by exact name, scoped to the
// user, creating it with default color and icon when absent.
func (im *Importer) findOrCreateCategory(ctx context.Context, userID, name string) (*domain.Category, bool, error) {
	category, err := im.store.FindCategoryByUserAndName(ctx, userID, name)
	if err == nil {
		return category, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	category = &domain.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Color:     domain.DefaultCategoryColor,
		Icon:      domain.DefaultCategoryIcon,
		CreatedAt: time.Now().UTC(),
	}
	if err := im.store.CreateCategory(ctx, category); err != nil {
		return nil, false, err
	}
	return category, true, nil
}

// resolveAccount resolves the row's account by name, or falls back to any
// existing account for the user, lazily creating the default account when
// the user has none.
func (im *Importer) resolveAccount(ctx context.Context, userID, name string) (*domain.Account, bool, error) {
	if name != "" {
		account, err := im.store.FindAccountByUserAndName(ctx, userID, name)
		if err == nil {
			return account, false, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, false, err
		}
		return im.createAccount(ctx, userID, name)
	}

	account, err := im.store.FindAnyAccountForUser(ctx, userID)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}
	return im.createAccount(ctx, userID, domain.DefaultAccountName)
}

func (im *Importer) createAccount(ctx context.Context, userID, name string) (*domain.Account, bool, error) {
	account := &domain.Account{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := im.store.CreateAccount(ctx, account); err != nil {
		return nil, false, err
	}
	return account, true, nil
}

// sampleLines returns up to the first sampleLineCount raw lines of the file
// for the institution detector.
func sampleLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > sampleLineCount {
		lines = lines[:sampleLineCount]
	}
	return lines
}

func fieldAt(fields []string, idx int) string {
	if idx < 0 || idx >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[idx])
}
