package validation

import (
	"errors"
	"strconv"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		value string
		min   int
		max   int
		want  bool
	}{
		{name: "lower bound", value: "1", min: 1, max: 1000, want: true},
		{name: "upper bound", value: "1000", min: 1, max: 1000, want: true},
		{name: "inside range", value: "50", min: 1, max: 1000, want: true},
		{name: "leading zeros", value: "007", min: 1, max: 1000, want: true},
		{name: "zero", value: "0", min: 1, max: 1000, want: false},
		{name: "above max", value: "1001", min: 1, max: 1000, want: false},
		{name: "empty", value: "", min: 0, max: 1000, want: false},
		{name: "negative", value: "-5", min: -10, max: 10, want: false},
		{name: "decimal", value: "1.5", min: 1, max: 1000, want: false},
		{name: "letters", value: "abc", min: 0, max: 1000, want: false},
		{name: "whitespace", value: " 5", min: 1, max: 1000, want: false},
		{name: "numeric not lexical", value: "9", min: 1, max: 10, want: true},
		{name: "overflow", value: "99999999999999999999999", min: 0, max: 1 << 30, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.value, tt.min, tt.max); got != tt.want {
				t.Errorf("IsValid(%q, %d, %d) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestIsValid_EveryValueInRange(t *testing.T) {
	for n := 1; n <= 1000; n++ {
		if !IsValid(strconv.Itoa(n), 1, 1000) {
			t.Fatalf("expected %d to be valid", n)
		}
	}
}

func TestParseBounded(t *testing.T) {
	n, err := ParseBounded("42", 1, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}

	if _, err := ParseBounded("x", 1, 1000); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
