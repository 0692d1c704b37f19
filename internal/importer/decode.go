package importer

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DecodeText interprets uploaded statement bytes as UTF-8 when they are
// valid UTF-8, and falls back to Windows-1252 otherwise. Brazilian bank
// exports are split between the two.
func DecodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decoding statement bytes: %w", err)
	}
	return string(decoded), nil
}
