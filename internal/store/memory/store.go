// Package memory is an in-memory record store used by tests and local
// dry-runs. It mirrors the semantics of the persistent backends, including
// ErrNotFound on missed lookups.
package memory

import (
	"context"
	"sync"

	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/store"
)

// Store keeps all records in process memory, guarded by one mutex.
type Store struct {
	mu           sync.Mutex
	categories   []domain.Category
	accounts     []domain.Account
	transactions []domain.Transaction
	budgets      []domain.Budget
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

func (s *Store) FindCategoryByUserAndName(_ context.Context, userID, name string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].UserID == userID && s.categories[i].Name == name {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateCategory(_ context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, *category)
	return nil
}

func (s *Store) FindAccountByUserAndName(_ context.Context, userID, name string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].UserID == userID && s.accounts[i].Name == name {
			a := s.accounts[i]
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateAccount(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, *account)
	return nil
}

func (s *Store) FindAnyAccountForUser(_ context.Context, userID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].UserID == userID {
			a := s.accounts[i]
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateTransaction(_ context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *Store) ListBudgetsForCategory(_ context.Context, userID, categoryID string) ([]domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.CategoryID == categoryID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) CreateBudget(_ context.Context, budget *domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = append(s.budgets, *budget)
	return nil
}

// Transactions returns a copy of all stored transactions, for assertions.
func (s *Store) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Transaction(nil), s.transactions...)
}

// Categories returns a copy of all stored categories, for assertions.
func (s *Store) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Category(nil), s.categories...)
}

// Accounts returns a copy of all stored accounts, for assertions.
func (s *Store) Accounts() []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Account(nil), s.accounts...)
}
