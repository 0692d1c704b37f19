package statement

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected ColumnMap
	}{
		{
			name:    "nubank export",
			headers: []string{"date", "title", "amount"},
			expected: ColumnMap{
				Date: 0, Description: 1, Amount: 2,
				Category: ColumnNotFound, Account: ColumnNotFound, Type: ColumnNotFound,
			},
		},
		{
			name:    "portuguese headers with casing and padding",
			headers: []string{" Data ", "Descrição", "Valor", "Categoria", "Conta", "Tipo"},
			expected: ColumnMap{
				Date: 0, Description: 1, Amount: 2,
				Category: 3, Account: 4, Type: 5,
			},
		},
		{
			name:    "exact match beats earlier substring match",
			headers: []string{"data da compra em valor", "valor"},
			expected: ColumnMap{
				Date: 0, Description: ColumnNotFound, Amount: 1,
				Category: ColumnNotFound, Account: ColumnNotFound, Type: ColumnNotFound,
			},
		},
		{
			name:    "substring fallback when nothing matches exactly",
			headers: []string{"data do balancete", "histórico completo", "valor (r$) total"},
			expected: ColumnMap{
				Date: 0, Description: 1, Amount: 2,
				Category: ColumnNotFound, Account: ColumnNotFound, Type: ColumnNotFound,
			},
		},
		{
			name:    "unrelated headers resolve to nothing",
			headers: []string{"foo", "bar"},
			expected: ColumnMap{
				Date: ColumnNotFound, Description: ColumnNotFound, Amount: ColumnNotFound,
				Category: ColumnNotFound, Account: ColumnNotFound, Type: ColumnNotFound,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumns(tt.headers)
			if got != tt.expected {
				t.Errorf("ResolveColumns(%v) = %+v; want %+v", tt.headers, got, tt.expected)
			}
		})
	}
}

func TestMissingRequired(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected []string
	}{
		{
			name:     "all present",
			headers:  []string{"date", "title", "amount"},
			expected: nil,
		},
		{
			name:     "amount missing",
			headers:  []string{"date", "title"},
			expected: []string{"amount"},
		},
		{
			name:     "everything missing",
			headers:  []string{"x", "y"},
			expected: []string{"date", "description", "amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveColumns(tt.headers).MissingRequired()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("MissingRequired() = %v; want %v", got, tt.expected)
			}
		})
	}
}

func TestRequireColumns(t *testing.T) {
	headers := []string{"foo", "amount"}
	err := ResolveColumns(headers).RequireColumns(headers)
	if err == nil {
		t.Fatal("expected an error for headers without date and description")
	}

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *MissingColumnsError, got %T", err)
	}
	if !reflect.DeepEqual(missing.Missing, []string{"date", "description"}) {
		t.Errorf("Missing = %v; want [date description]", missing.Missing)
	}
	if !strings.Contains(err.Error(), "date") || !strings.Contains(err.Error(), "description") {
		t.Errorf("error message should name the missing fields: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "foo") {
		t.Errorf("error message should echo the headers found: %q", err.Error())
	}
}

func TestRequireColumnsAllPresent(t *testing.T) {
	headers := []string{"data", "descrição", "valor"}
	if err := ResolveColumns(headers).RequireColumns(headers); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
