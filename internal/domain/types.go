// Package domain holds the entities shared by the statement importer, the
// billing calculator and the record stores.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction as money in or money out.
// Use ValidateKind to ensure validity before use.
type TransactionKind string

const (
	KindIncome  TransactionKind = "INCOME"
	KindExpense TransactionKind = "EXPENSE"
)

// PeriodKind is the recurrence of a budget period.
// Use ValidatePeriodKind to ensure validity before use.
type PeriodKind string

const (
	PeriodWeekly  PeriodKind = "WEEKLY"
	PeriodMonthly PeriodKind = "MONTHLY"
	PeriodYearly  PeriodKind = "YEARLY"
)

var (
	validKinds = map[TransactionKind]struct{}{
		KindIncome: {}, KindExpense: {},
	}

	validPeriodKinds = map[PeriodKind]struct{}{
		PeriodWeekly: {}, PeriodMonthly: {}, PeriodYearly: {},
	}
)

// ValidateKind checks if the transaction kind is valid
func ValidateKind(k TransactionKind) bool {
	_, ok := validKinds[k]
	return ok
}

// ValidatePeriodKind checks if the period kind is valid
func ValidatePeriodKind(k PeriodKind) bool {
	_, ok := validPeriodKinds[k]
	return ok
}

// Default visual attributes applied to categories created during import.
const (
	DefaultCategoryColor = "#8A05BE"
	DefaultCategoryIcon  = "tag"
)

// DefaultAccountName is the account used for imported rows that carry no
// account column, created lazily on first use.
const DefaultAccountName = "Conta Principal"

// Category is a user-scoped spending category.
type Category struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
}

// Account is a user-scoped money account (bank account, card, wallet).
type Account struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Transaction is a persisted financial movement. Amount is always a strictly
// positive magnitude; direction lives in Kind.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	CategoryID  string          `json:"categoryId"`
	AccountID   string          `json:"accountId"`
	CardID      string          `json:"cardId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Budget is a recurring spending limit for one category. StartDate anchors
// the first cycle; the effective window is derived from Kind.
type Budget struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	CategoryID string          `json:"categoryId"`
	Kind       PeriodKind      `json:"periodKind"`
	Amount     decimal.Decimal `json:"amount"`
	StartDate  time.Time       `json:"startDate"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// NormalizedTransaction is the transient per-row result of statement parsing,
// before any store lookups. It is never persisted directly.
type NormalizedTransaction struct {
	Date         time.Time
	Description  string
	Amount       decimal.Decimal // strictly positive magnitude
	Kind         TransactionKind
	CategoryName string
	AccountName  string // empty means "use the default account"
}

// NewNormalizedTransaction creates a validated normalized transaction.
func NewNormalizedTransaction(date time.Time, description string, amount decimal.Decimal, kind TransactionKind, categoryName, accountName string) (*NormalizedTransaction, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("date cannot be zero")
	}
	if description == "" {
		return nil, fmt.Errorf("description cannot be empty")
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be strictly positive, got %s", amount)
	}
	if !ValidateKind(kind) {
		return nil, fmt.Errorf("invalid transaction kind: %s", kind)
	}
	if categoryName == "" {
		return nil, fmt.Errorf("category name cannot be empty")
	}

	return &NormalizedTransaction{
		Date:         date,
		Description:  description,
		Amount:       amount,
		Kind:         kind,
		CategoryName: categoryName,
		AccountName:  accountName,
	}, nil
}

// NewBudget creates a validated budget.
func NewBudget(id, userID, categoryID string, kind PeriodKind, amount decimal.Decimal, startDate time.Time) (*Budget, error) {
	if id == "" {
		return nil, fmt.Errorf("budget ID cannot be empty")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}
	if categoryID == "" {
		return nil, fmt.Errorf("category ID cannot be empty")
	}
	if !ValidatePeriodKind(kind) {
		return nil, fmt.Errorf("invalid period kind: %s", kind)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("budget amount must be strictly positive, got %s", amount)
	}
	if startDate.IsZero() {
		return nil, fmt.Errorf("start date cannot be zero")
	}

	return &Budget{
		ID:         id,
		UserID:     userID,
		CategoryID: categoryID,
		Kind:       kind,
		Amount:     amount,
		StartDate:  startDate,
	}, nil
}
