package statement

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var embeddedAliases []byte

// ColumnNotFound is the sentinel index for a semantic field with no matching
// header.
const ColumnNotFound = -1

// ColumnMap maps each semantic field to a zero-based header index, or
// ColumnNotFound. Built once per file and never mutated afterwards.
type ColumnMap struct {
	Date        int
	Description int
	Amount      int
	Category    int
	Account     int
	Type        int
}

// MissingColumnsError is the fatal error for a file whose header lacks one
// or more of the required fields. Headers echoes what was actually found so
// the caller can show a useful diagnostic.
type MissingColumnsError struct {
	Missing []string
	Headers []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("required columns missing: %s (headers found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Headers, ", "))
}

type aliasField struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

type aliasTable struct {
	Fields []aliasField `yaml:"fields"`
}

var aliases = mustLoadAliases(embeddedAliases)

func mustLoadAliases(data []byte) map[string][]string {
	var table aliasTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		panic(fmt.Sprintf("statement: malformed embedded alias table: %v", err))
	}
	out := make(map[string][]string, len(table.Fields))
	for _, f := range table.Fields {
		if f.Name == "" || len(f.Aliases) == 0 {
			panic(fmt.Sprintf("statement: alias table entry %q has no aliases", f.Name))
		}
		out[f.Name] = f.Aliases
	}
	for _, required := range []string{"date", "description", "amount", "category", "account", "type"} {
		if _, ok := out[required]; !ok {
			panic(fmt.Sprintf("statement: alias table missing field %q", required))
		}
	}
	return out
}

// ResolveColumns maps the header row to semantic field indexes. Resolution
// is total and deterministic: every field resolves to a valid index or
// ColumnNotFound, never an error.
func ResolveColumns(headers []string) ColumnMap {
	folded := make([]string, len(headers))
	for i, h := range headers {
		folded[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return ColumnMap{
		Date:        resolveField(folded, aliases["date"]),
		Description: resolveField(folded, aliases["description"]),
		Amount:      resolveField(folded, aliases["amount"]),
		Category:    resolveField(folded, aliases["category"]),
		Account:     resolveField(folded, aliases["account"]),
		Type:        resolveField(folded, aliases["type"]),
	}
}

// resolveField runs the two-pass policy: an exact match against any alias
// beats every substring match, so a generic alias ("data") cannot shadow a
// more specific header it is a substring of.
func resolveField(headers []string, fieldAliases []string) int {
	for _, alias := range fieldAliases {
		for i, h := range headers {
			if h == alias {
				return i
			}
		}
	}
	for _, alias := range fieldAliases {
		for i, h := range headers {
			if strings.Contains(h, alias) {
				return i
			}
		}
	}
	return ColumnNotFound
}

// MissingRequired reports which of the three required fields are unresolved,
// in stable order.
func (m ColumnMap) MissingRequired() []string {
	var missing []string
	if m.Date == ColumnNotFound {
		missing = append(missing, "date")
	}
	if m.Description == ColumnNotFound {
		missing = append(missing, "description")
	}
	if m.Amount == ColumnNotFound {
		missing = append(missing, "amount")
	}
	return missing
}

// RequireColumns returns a MissingColumnsError when any of date, description
// or amount did not resolve. The whole file must be rejected in that case
// before any row is processed.
func (m ColumnMap) RequireColumns(headers []string) error {
	missing := m.MissingRequired()
	if len(missing) == 0 {
		return nil
	}
	return &MissingColumnsError{Missing: missing, Headers: headers}
}
