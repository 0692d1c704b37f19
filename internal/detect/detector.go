// Package detect identifies which financial institution produced a
// statement file from its header row and a handful of sample lines. It is a
// pure scoring pass with no side effects: it always returns a result,
// degrading to Unknown rather than failing.
package detect

import (
	"strings"

	"github.com/finata-app/finata/internal/statement"
)

// Institution is the fixed set of recognized banks.
type Institution string

const (
	Nubank        Institution = "NUBANK"
	Inter         Institution = "INTER"
	BancoDoBrasil Institution = "BANCO_DO_BRASIL"
	Bradesco      Institution = "BRADESCO"
	Itau          Institution = "ITAU"
	Santander     Institution = "SANTANDER"
	Unknown       Institution = "UNKNOWN"
)

// acceptThreshold is the confidence at which profile evaluation stops.
// Profiles are tried in a fixed priority order, so scores are comparable
// only against this threshold, not across profiles.
const acceptThreshold = 0.4

// Result is the outcome of one detection pass.
type Result struct {
	Institution Institution `json:"institution"`
	Confidence  float64     `json:"confidence"`
	Indicators  []string    `json:"indicators"`
}

// indicator is one weighted boolean signal of a profile.
type indicator struct {
	weight float64
	reason string
	match  func(headers, samples []string) bool
}

// profile is an institution signature plus its sign convention, consumed by
// the importer once detection picks a profile.
type profile struct {
	institution Institution
	convention  statement.SignConvention
	indicators  []indicator
}

// Detect scores the known institution profiles against the lowercased
// headers and up to five raw sample lines, stopping at the first profile
// whose accumulated confidence reaches the acceptance threshold.
func Detect(headers []string, sampleLines []string) Result {
	folded := foldAll(headers)
	if len(sampleLines) > 5 {
		sampleLines = sampleLines[:5]
	}
	samples := foldAll(sampleLines)

	for _, p := range profiles {
		confidence := 0.0
		var reasons []string
		for _, ind := range p.indicators {
			if ind.match(folded, samples) {
				confidence += ind.weight
				reasons = append(reasons, ind.reason)
			}
		}
		if confidence >= acceptThreshold {
			return Result{
				Institution: p.institution,
				Confidence:  clamp(confidence),
				Indicators:  reasons,
			}
		}
	}

	return Result{
		Institution: Unknown,
		Confidence:  0,
		Indicators:  []string{"no known institution signature matched"},
	}
}

// Convention returns the sign convention for a detected institution.
// Unknown institutions carry no sign convention.
func Convention(inst Institution) statement.SignConvention {
	for _, p := range profiles {
		if p.institution == inst {
			return p.convention
		}
	}
	return statement.SignConvention{}
}

func foldAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
