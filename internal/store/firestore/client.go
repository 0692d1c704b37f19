// Package firestore is the hosted record-store backend. Documents are
// scoped by userId fields, mirroring the keyed lookups of store.Store.
// Decimal amounts are stored as strings to keep magnitudes exact.
package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/finata-app/finata/internal/domain"
	"github.com/finata-app/finata/internal/store"
)

const (
	categoriesCollection   = "finata-categories"
	accountsCollection     = "finata-accounts"
	transactionsCollection = "finata-transactions"
	budgetsCollection      = "finata-budgets"
)

// Client wraps Firestore with the record-store operations the engine needs,
// plus the Firebase auth client used by the HTTP middleware.
type Client struct {
	Firestore *firestore.Client
	Auth      *auth.Client
	projectID string
}

// NewClient initializes the Firebase app, Firestore and the auth client.
func NewClient(ctx context.Context, projectID string) (*Client, error) {
	conf := &firebase.Config{ProjectID: projectID}

	app, err := firebase.NewApp(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		firestoreClient.Close()
		return nil, fmt.Errorf("failed to create Auth client: %w", err)
	}

	return &Client{
		Firestore: firestoreClient,
		Auth:      authClient,
		projectID: projectID,
	}, nil
}

// Close closes the Firestore client.
func (c *Client) Close() error {
	return c.Firestore.Close()
}

type categoryDoc struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"userId"`
	Name      string    `firestore:"name"`
	Color     string    `firestore:"color"`
	Icon      string    `firestore:"icon"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type accountDoc struct {
	ID        string    `firestore:"id"`
	UserID    string    `firestore:"userId"`
	Name      string    `firestore:"name"`
	CreatedAt time.Time `firestore:"createdAt"`
}

type transactionDoc struct {
	ID          string    `firestore:"id"`
	UserID      string    `firestore:"userId"`
	Date        time.Time `firestore:"date"`
	Description string    `firestore:"description"`
	Amount      string    `firestore:"amount"`
	Kind        string    `firestore:"kind"`
	CategoryID  string    `firestore:"categoryId"`
	AccountID   string    `firestore:"accountId"`
	CardID      string    `firestore:"cardId,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
}

type budgetDoc struct {
	ID         string    `firestore:"id"`
	UserID     string    `firestore:"userId"`
	CategoryID string    `firestore:"categoryId"`
	Kind       string    `firestore:"periodKind"`
	Amount     string    `firestore:"amount"`
	StartDate  time.Time `firestore:"startDate"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

func (c *Client) FindCategoryByUserAndName(ctx context.Context, userID, name string) (*domain.Category, error) {
	iter := c.Firestore.Collection(categoriesCollection).
		Where("userId", "==", userID).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category %q for user %s: %w", name, userID, err)
	}

	var d categoryDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to parse category: %w", err)
	}
	return &domain.Category{
		ID: d.ID, UserID: d.UserID, Name: d.Name,
		Color: d.Color, Icon: d.Icon, CreatedAt: d.CreatedAt,
	}, nil
}

func (c *Client) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now().UTC()
	}
	d := categoryDoc{
		ID: category.ID, UserID: category.UserID, Name: category.Name,
		Color: category.Color, Icon: category.Icon, CreatedAt: category.CreatedAt,
	}
	_, err := c.Firestore.Collection(categoriesCollection).Doc(d.ID).Set(ctx, d)
	return err
}

func (c *Client) FindAccountByUserAndName(ctx context.Context, userID, name string) (*domain.Account, error) {
	iter := c.Firestore.Collection(accountsCollection).
		Where("userId", "==", userID).
		Where("name", "==", name).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account %q for user %s: %w", name, userID, err)
	}

	var d accountDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	return &domain.Account{ID: d.ID, UserID: d.UserID, Name: d.Name, CreatedAt: d.CreatedAt}, nil
}

func (c *Client) CreateAccount(ctx context.Context, account *domain.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	d := accountDoc{ID: account.ID, UserID: account.UserID, Name: account.Name, CreatedAt: account.CreatedAt}
	_, err := c.Firestore.Collection(accountsCollection).Doc(d.ID).Set(ctx, d)
	return err
}

func (c *Client) FindAnyAccountForUser(ctx context.Context, userID string) (*domain.Account, error) {
	iter := c.Firestore.Collection(accountsCollection).
		Where("userId", "==", userID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}

	var d accountDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to parse account: %w", err)
	}
	return &domain.Account{ID: d.ID, UserID: d.UserID, Name: d.Name, CreatedAt: d.CreatedAt}, nil
}

func (c *Client) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	d := transactionDoc{
		ID: tx.ID, UserID: tx.UserID, Date: tx.Date, Description: tx.Description,
		Amount: tx.Amount.String(), Kind: string(tx.Kind),
		CategoryID: tx.CategoryID, AccountID: tx.AccountID, CardID: tx.CardID,
		CreatedAt: tx.CreatedAt,
	}
	_, err := c.Firestore.Collection(transactionsCollection).Doc(d.ID).Set(ctx, d)
	return err
}

func (c *Client) ListBudgetsForCategory(ctx context.Context, userID, categoryID string) ([]domain.Budget, error) {
	iter := c.Firestore.Collection(budgetsCollection).
		Where("userId", "==", userID).
		Where("categoryId", "==", categoryID).
		Documents(ctx)

	var budgets []domain.Budget
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate budgets for user %s: %w", userID, err)
		}

		var d budgetDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to parse budget: %w", err)
		}
		amount, err := decimal.NewFromString(d.Amount)
		if err != nil {
			return nil, fmt.Errorf("budget %s has malformed amount %q: %w", d.ID, d.Amount, err)
		}
		budgets = append(budgets, domain.Budget{
			ID: d.ID, UserID: d.UserID, CategoryID: d.CategoryID,
			Kind: domain.PeriodKind(d.Kind), Amount: amount,
			StartDate: d.StartDate, CreatedAt: d.CreatedAt,
		})
	}
	return budgets, nil
}

func (c *Client) CreateBudget(ctx context.Context, budget *domain.Budget) error {
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}
	d := budgetDoc{
		ID: budget.ID, UserID: budget.UserID, CategoryID: budget.CategoryID,
		Kind: string(budget.Kind), Amount: budget.Amount.String(),
		StartDate: budget.StartDate, CreatedAt: budget.CreatedAt,
	}
	_, err := c.Firestore.Collection(budgetsCollection).Doc(d.ID).Set(ctx, d)
	return err
}
