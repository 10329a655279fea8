package questiongen

import (
	"strings"
	"testing"
)

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}
	valid := Question{Prompt: "What is 2+2?", AcceptedAnswer: "4", Explanation: "2+2=4"}

	tests := []struct {
		name   string
		mutate func(q *Question)
		ok     bool
	}{
		{"valid", func(*Question) {}, true},
		{"blank prompt", func(q *Question) { q.Prompt = "   " }, false},
		{"blank answer", func(q *Question) { q.AcceptedAnswer = "\t" }, false},
		{"blank explanation", func(q *Question) { q.Explanation = "" }, false},
		{"long prompt", func(q *Question) { q.Prompt = strings.Repeat("a", 1001) }, false},
		{"long explanation", func(q *Question) { q.Explanation = strings.Repeat("b", 2001) }, false},
	}

	for _, tc := range tests {
		q := valid
		tc.mutate(&q)
		err := v.Validate(&q, testRequest())
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestAnswerLengthValidator(t *testing.T) {
	v := &AnswerLengthValidator{MaxRunes: 10}

	if err := v.Validate(&Question{AcceptedAnswer: "x = 4"}, testRequest()); err != nil {
		t.Errorf("short answer rejected: %v", err)
	}
	if err := v.Validate(&Question{AcceptedAnswer: "the answer is four"}, testRequest()); err == nil {
		t.Error("expected long answer to be rejected")
	}
	if err := v.Validate(&Question{AcceptedAnswer: "4\n5"}, testRequest()); err == nil {
		t.Error("expected multi-line answer to be rejected")
	}

	def := &AnswerLengthValidator{}
	if err := def.Validate(&Question{AcceptedAnswer: strings.Repeat("9", 80)}, testRequest()); err != nil {
		t.Errorf("default limit should allow 80 runes: %v", err)
	}
}
