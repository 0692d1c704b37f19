// Package sqlite is the default record-store backend, a single-file SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	color      TEXT NOT NULL,
	icon       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE(user_id, name)
);
CREATE TABLE IF NOT EXISTS accounts (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE(user_id, name)
);
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	date        TIMESTAMP NOT NULL,
	description TEXT NOT NULL,
	amount      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	category_id TEXT NOT NULL REFERENCES categories(id),
	account_id  TEXT NOT NULL REFERENCES accounts(id),
	card_id     TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);
CREATE TABLE IF NOT EXISTS budgets (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	category_id TEXT NOT NULL REFERENCES categories(id),
	kind        TEXT NOT NULL,
	amount      TEXT NOT NULL,
	start_date  TIMESTAMP NOT NULL,
	created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_budgets_user_category ON budgets(user_id, category_id);
`

// Store is a SQLite-backed record store.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) FindCategoryByUserAndName(ctx context.Context, userID, name string) (*domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, color, icon, created_at FROM categories WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.Icon, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding category %q: %w", name, err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, user_id, name, color, icon, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID, category.UserID, category.Name, category.Color, category.Icon, category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating category %q: %w", category.Name, err)
	}
	return nil
}

func (s *Store) FindAccountByUserAndName(ctx context.Context, userID, name string) (*domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM accounts WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&a.ID, &a.UserID, &a.Name, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding account %q: %w", name, err)
	}
	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		account.ID, account.UserID, account.Name, account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating account %q: %w", account.Name, err)
	}
	return nil
}

func (s *Store) FindAnyAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	var a domain.Account
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM accounts WHERE user_id = ? ORDER BY created_at LIMIT 1`,
		userID,
	).Scan(&a.ID, &a.UserID, &a.Name, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding account for user %s: %w", userID, err)
	}
	return &a, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, date, description, amount, kind, category_id, account_id, card_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.Date, tx.Description, tx.Amount.String(), string(tx.Kind),
		tx.CategoryID, tx.AccountID, tx.CardID, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}
	return nil
}

func (s *Store) ListBudgetsForCategory(ctx context.Context, userID, categoryID string) ([]domain.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, category_id, kind, amount, start_date, created_at
		 FROM budgets WHERE user_id = ? AND category_id = ?`,
		userID, categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var (
			b      domain.Budget
			amount string
			kind   string
		)
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &kind, &amount, &b.StartDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		b.Kind = domain.PeriodKind(kind)
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("budget %s has malformed amount %q: %w", b.ID, amount, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *Store) CreateBudget(ctx context.Context, budget *domain.Budget) error {
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, user_id, category_id, kind, amount, start_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		budget.ID, budget.UserID, budget.CategoryID, string(budget.Kind),
		budget.Amount.String(), budget.StartDate, budget.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}
	return nil
}
