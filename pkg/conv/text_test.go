package conv

import "testing"

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain excerpt untouched",
			input: "The landlord may require a bond.",
			want:  "The landlord may require a bond.",
		},
		{
			name:  "whitespace collapsed",
			input: "The landlord\n\n   may require\ta bond.",
			want:  "The landlord may require a bond.",
		},
		{
			name:  "paragraph markup and entities",
			input: "<p>The bond must not exceed 4 weeks&#39; rent.</p>",
			want:  "The bond must not exceed 4 weeks' rent.",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short", "Privacy Act 2020", 40, "Privacy Act 2020"},
		{"exact", "abcdef", 6, "abcdef"},
		{"cut", "Residential Tenancies Act", 12, "Residenti..."},
		{"multibyte", "Māori Land Act", 8, "Māori..."},
		{"tiny max ignored", "abcdef", 3, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}
