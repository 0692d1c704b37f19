package detect

import (
	"strings"

	"github.com/finata-app/finata/internal/statement"
)

// profiles are evaluated in this exact order; first profile to reach the
// acceptance threshold wins. Converting this to a max-score-across-profiles
// scheme would change behavior for files that weakly match several banks.
var profiles = []profile{
	{
		institution: Nubank,
		// Nubank account exports record received money as negative amounts.
		convention: statement.SignConvention{NegativeIsIncome: true},
		indicators: []indicator{
			{
				weight: 0.4,
				reason: "header layout matches Nubank card export (date, title, amount)",
				match:  headersContainAll("date", "title", "amount"),
			},
			{
				weight: 0.4,
				reason: "header layout matches Nubank account export (data, valor, identificador)",
				match:  headersContainAll("data", "valor", "identificador"),
			},
			{
				weight: 0.2,
				reason: "sample lines mention Nubank",
				match:  samplesMention("nubank", "nu pagamentos"),
			},
		},
	},
	{
		institution: Inter,
		indicators: []indicator{
			{
				weight: 0.4,
				reason: "header layout matches Banco Inter export (data lançamento, descrição, valor)",
				match:  headersContainAll("data lançamento", "descrição", "valor"),
			},
			{
				weight: 0.2,
				reason: "sample lines mention Banco Inter",
				match:  samplesMention("banco inter", "bancointer"),
			},
		},
	},
	{
		institution: BancoDoBrasil,
		indicators: []indicator{
			{
				weight: 0.4,
				reason: "header contains Banco do Brasil balancete columns",
				match:  headersContainAll("dependencia origem", "data do balancete"),
			},
			{
				weight: 0.2,
				reason: "sample lines mention Banco do Brasil",
				match:  samplesMention("banco do brasil", "bb.com.br"),
			},
		},
	},
	{
		institution: Bradesco,
		indicators: []indicator{
			{
				weight: 0.35,
				reason: "header layout matches Bradesco extract (data, histórico, crédito, débito)",
				match:  headersContainAll("data", "histórico", "crédito (r$)", "débito (r$)"),
			},
			{
				weight: 0.2,
				reason: "sample lines mention Bradesco",
				match:  samplesMention("bradesco"),
			},
		},
	},
	{
		institution: Itau,
		indicators: []indicator{
			{
				weight: 0.35,
				reason: "header layout matches Itaú extract (data, lançamento, valor)",
				match:  headersContainAll("data", "lançamento", "valor"),
			},
			{
				weight: 0.2,
				reason: "sample lines mention Itaú",
				match:  samplesMention("itau", "itaú"),
			},
		},
	},
	{
		institution: Santander,
		indicators: []indicator{
			{
				weight: 0.3,
				reason: "header layout matches Santander extract (data, descricao, valor)",
				match:  headersContainAll("data", "descricao", "valor"),
			},
			{
				weight: 0.2,
				reason: "sample lines mention Santander",
				match:  samplesMention("santander"),
			},
		},
	},
}

// headersContainAll matches when every named header is present (already
// case-folded) in the header row, in any order.
func headersContainAll(names ...string) func(headers, samples []string) bool {
	return func(headers, _ []string) bool {
		for _, name := range names {
			if !containsExact(headers, name) {
				return false
			}
		}
		return true
	}
}

// samplesMention matches when any sample line contains any of the needles.
func samplesMention(needles ...string) func(headers, samples []string) bool {
	return func(_, samples []string) bool {
		for _, line := range samples {
			for _, needle := range needles {
				if strings.Contains(line, needle) {
					return true
				}
			}
		}
		return false
	}
}

func containsExact(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
