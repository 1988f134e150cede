package parser

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"González González, Marta", "gonzalez gonzalez, marta"},
		{"  marta   GONZÁLEZ ", "marta gonzalez"},
		{"1 h", "1 h"},
		{"1K", "1k"},
		{"Muñoz Ibáñez", "munoz ibanez"},
		{"EVALUACIÓN", "evaluacion"},
		{"", ""},
		{" \t ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
