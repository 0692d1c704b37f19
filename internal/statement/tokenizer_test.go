package statement

import (
	"errors"
	"reflect"
	"testing"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected rune
	}{
		{
			name:     "semicolon file",
			text:     "data;valor\n01/02/2024;10,50\n",
			expected: ';',
		},
		{
			name:     "comma file",
			text:     "date,title,amount\n2024-02-01,Rent,100\n",
			expected: ',',
		},
		{
			name:     "semicolon wins even when commas present",
			text:     "data;valor\n01/02/2024;10,50\n",
			expected: ';',
		},
		{
			name:     "no delimiter at all defaults to comma",
			text:     "only one column\n",
			expected: ',',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDelimiter(tt.text); got != tt.expected {
				t.Errorf("DetectDelimiter() = %q; want %q", got, tt.expected)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		delim    rune
		expected []Row
	}{
		{
			name:  "plain rows",
			text:  "a,b,c\n1,2,3",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{"a", "b", "c"}},
				{Line: 2, Fields: []string{"1", "2", "3"}},
			},
		},
		{
			name:  "quoted delimiter is literal",
			text:  "desc,amount\n\"Uber, trip\",25.00",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{"desc", "amount"}},
				{Line: 2, Fields: []string{"Uber, trip", "25.00"}},
			},
		},
		{
			name:  "doubled quote emits one literal quote",
			text:  "\"Rent \"\"Dec\"\"\",100",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{`Rent "Dec"`, "100"}},
			},
		},
		{
			name:  "line terminator ends row even inside quotes",
			text:  "\"unterminated\n1,2",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{"unterminated"}},
				{Line: 2, Fields: []string{"1", "2"}},
			},
		},
		{
			name:  "blank lines dropped but line numbers kept",
			text:  "a,b\n\n1,2\n   \n3,4",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{"a", "b"}},
				{Line: 3, Fields: []string{"1", "2"}},
				{Line: 5, Fields: []string{"3", "4"}},
			},
		},
		{
			name:  "crlf line endings",
			text:  "a,b\r\n1,2\r\n",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{"a", "b"}},
				{Line: 2, Fields: []string{"1", "2"}},
			},
		},
		{
			name:  "semicolon delimiter keeps commas in fields",
			text:  "data;valor\n01/02/2024;10,50",
			delim: ';',
			expected: []Row{
				{Line: 1, Fields: []string{"data", "valor"}},
				{Line: 2, Fields: []string{"01/02/2024", "10,50"}},
			},
		},
		{
			name:  "trailing empty field preserved",
			text:  "a,b,\n",
			delim: ',',
			expected: []Row{
				{Line: 1, Fields: []string{"a", "b", ""}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.delim)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokenize() = %#v; want %#v", got, tt.expected)
			}
		})
	}
}

func TestTokenizeIsRestartable(t *testing.T) {
	text := "a,b\n\"x,y\",2\n"
	first := Tokenize(text, ',')
	second := Tokenize(text, ',')
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-tokenizing the same text produced different rows")
	}
}

func TestParseRejectsEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "only blank lines", text: "\n\n   \n"},
		{name: "header only", text: "date,title,amount\n"},
		{name: "header plus blank lines", text: "date,title,amount\n\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Parse() error = %v; want ErrEmptyInput", err)
			}
		})
	}
}

func TestParseReturnsHeaderFirst(t *testing.T) {
	rows, err := Parse("date;title;amount\n01/02/2024;Mercado;10,50\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Fields[0] != "date" {
		t.Errorf("expected header row first, got %v", rows[0].Fields)
	}
}
