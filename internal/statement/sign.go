package statement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finata-app/finata/internal/domain"
)

// SignConvention describes how a source encodes transaction direction.
// Some exports carry sign information and others carry none, so a sign rule
// must never be applied where no convention is known.
type SignConvention struct {
	// NegativeIsIncome: a negative parsed amount means money received.
	NegativeIsIncome bool
}

// incomeHints are localized words in a description or explicit type column
// that indicate money received, used only for sources without a known sign
// convention.
var incomeHints = []string{
	"receita",
	"recebimento",
	"entrada",
	"depósito",
	"deposito",
	"salário",
	"salario",
	"rendimento",
	"income",
	"credit",
	"crédito",
	"credito",
}

// ResolveKind decides INCOME vs EXPENSE and the stored magnitude for a
// signed parsed amount. The magnitude is always the absolute value, so a
// NormalizedTransaction never carries a sign downstream.
func ResolveKind(amount decimal.Decimal, description, typeField string, conv SignConvention) (domain.TransactionKind, decimal.Decimal) {
	if conv.NegativeIsIncome {
		if amount.IsNegative() {
			return domain.KindIncome, amount.Abs()
		}
		return domain.KindExpense, amount.Abs()
	}

	if hasIncomeHint(typeField) || hasIncomeHint(description) {
		return domain.KindIncome, amount.Abs()
	}
	return domain.KindExpense, amount.Abs()
}

func hasIncomeHint(s string) bool {
	if s == "" {
		return false
	}
	folded := strings.ToLower(s)
	for _, hint := range incomeHints {
		if strings.Contains(folded, hint) {
			return true
		}
	}
	return false
}
