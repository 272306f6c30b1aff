package extract

import "testing"

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"dollar with thousands", "$1,299.99", 1299.99, true},
		{"decimal comma", "29,99", 29.99, true},
		{"decimal comma large", "1299,99", 1299.99, true},
		{"thousands and cents", "1,299.99", 1299.99, true},
		{"plain number", "19.99", 19.99, true},
		{"currency symbol", "€49.50", 49.5, true},
		{"surrounding text", "Now only $24.99!", 24.99, true},
		{"negative", "-5", 0, false},
		{"negative with currency", "-$5.00", 0, false},
		{"zero", "0", 0, false},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"no digits", "free", 0, false},
		{"rounds to two decimals", "19.999", 20.00, true},
		{"separators only", ".,", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizePrice(tt.input)
			if ok != tt.ok {
				t.Fatalf("NormalizePrice(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("NormalizePrice(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Widget   Pro  ", "Widget Pro"},
		{"line\none\n\tline two", "line one line two"},
		{"already clean", "already clean"},
		{"", ""},
		{"\t\n ", ""},
	}

	for _, tt := range tests {
		if got := CollapseWhitespace(tt.input); got != tt.want {
			t.Errorf("CollapseWhitespace(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
