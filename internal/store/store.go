// Package store defines the record-store interface the ingestion engine
// depends on. Persistence itself lives in the backend subpackages; the
// engine only issues keyed lookups and inserts, never multi-statement
// transactions.
package store

import (
	"context"
	"errors"

	"github.com/finata-app/finata/internal/domain"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("store: record not found")

// Store is the keyed lookup/insert surface required by the importer and the
// budget validator. Each call either succeeds or returns an error; there is
// no engine-level rollback of records created earlier in the same import.
type Store interface {
	FindCategoryByUserAndName(ctx context.Context, userID, name string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) error

	FindAccountByUserAndName(ctx context.Context, userID, name string) (*domain.Account, error)
	CreateAccount(ctx context.Context, account *domain.Account) error
	FindAnyAccountForUser(ctx context.Context, userID string) (*domain.Account, error)

	CreateTransaction(ctx context.Context, tx *domain.Transaction) error

	ListBudgetsForCategory(ctx context.Context, userID, categoryID string) ([]domain.Budget, error)
	CreateBudget(ctx context.Context, budget *domain.Budget) error
}
