package importer

import "testing"

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		expected string
	}{
		{
			name:     "valid utf-8 passes through",
			raw:      []byte("data,descrição,valor"),
			expected: "data,descrição,valor",
		},
		{
			name:     "windows-1252 accents decoded",
			raw:      []byte{'C', 'a', 'f', 0xE9}, // "Café" in Windows-1252
			expected: "Café",
		},
		{
			name:     "windows-1252 cedilla decoded",
			raw:      []byte{0xE7, 'a'}, // "ça"
			expected: "ça",
		},
		{
			name:     "empty input",
			raw:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("DecodeText() = %q; want %q", got, tt.expected)
			}
		})
	}
}
