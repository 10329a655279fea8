package grading

import (
	"testing"

	"github.com/abhisek/mathcoach/internal/questiongen"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x = 5", "5"},
		{"5", "5"},
		{" x=5 ", "5"},
		{"x= -3", "-3"},
		{"x  =\t2/3", "2/3"},
		{"X = 5", "X = 5"},
		{"y = 5", "y = 5"},
		{"5 = x", "5 = x"},
		{"x", "x"},
		{"x + 1", "x + 1"},
		{"xy = 2", "xy = 2"},
		{"", ""},
		{"   ", ""},
		{" x = 7 ", "7"},
		{"x = x = 5", "5"},
		{"x =", ""},
	}

	for _, tc := range tests {
		got := Normalize(tc.input)
		if got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"x = 5", "5", " x=5 ", "x = x = 5", "x =  x=1", "  x =  ",
		"x =  x", "Hello", "x=x=x=", "\tx\t=\t9\t", "3.14", "x = -x",
	}
	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestGrade(t *testing.T) {
	q := questiongen.Question{Prompt: "Solve 2x = 14", AcceptedAnswer: "x = 7"}

	tests := []struct {
		answer  string
		correct bool
	}{
		{"7", true},
		{"x = 7", true},
		{"  x=7", true},
		{"7.0", false},
		{"8", false},
		{"", false},
	}

	for _, tc := range tests {
		v := Grade(q, tc.answer)
		if v.IsCorrect != tc.correct {
			t.Errorf("Grade(%q) correct = %v, want %v", tc.answer, v.IsCorrect, tc.correct)
		}
	}
}

func TestGrade_Messages(t *testing.T) {
	q := questiongen.Question{AcceptedAnswer: "x = 7"}

	if v := Grade(q, "7"); v.Message != "✅ Correct! Well done." {
		t.Errorf("unexpected correct message: %q", v.Message)
	}
	if v := Grade(q, "6"); v.Message != "❌ Not quite. Correct answer: x = 7" {
		t.Errorf("unexpected incorrect message: %q", v.Message)
	}
}

func TestGrade_NoCaseFolding(t *testing.T) {
	q := questiongen.Question{AcceptedAnswer: "Yes"}
	if Grade(q, "yes").IsCorrect {
		t.Error("grading must be case-sensitive")
	}
}
