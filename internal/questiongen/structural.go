package questiongen

import (
	"strings"
	"unicode/utf8"
)

// StructuralValidator checks that every field of the reply is present and
// within length limits. Partial replies fail here.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question, _ Request) *ReplyError {
	if strings.TrimSpace(q.Prompt) == "" {
		return &ReplyError{Validator: v.Name(), Message: "question is empty"}
	}
	if utf8.RuneCountInString(q.Prompt) > 1000 {
		return &ReplyError{Validator: v.Name(), Message: "question exceeds 1000 characters"}
	}
	if strings.TrimSpace(q.AcceptedAnswer) == "" {
		return &ReplyError{Validator: v.Name(), Message: "correct_answer is empty"}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ReplyError{Validator: v.Name(), Message: "explanation is empty"}
	}
	if utf8.RuneCountInString(q.Explanation) > 2000 {
		return &ReplyError{Validator: v.Name(), Message: "explanation exceeds 2000 characters"}
	}
	return nil
}

// AnswerLengthValidator rejects accepted answers that a learner could not
// reasonably type, such as a worked solution returned in the answer field.
type AnswerLengthValidator struct {
	MaxRunes int
}

func (v *AnswerLengthValidator) Name() string { return "answer-length" }

func (v *AnswerLengthValidator) Validate(q *Question, _ Request) *ReplyError {
	limit := v.MaxRunes
	if limit <= 0 {
		limit = defaultMaxAnswerRunes
	}
	if utf8.RuneCountInString(strings.TrimSpace(q.AcceptedAnswer)) > limit {
		return &ReplyError{Validator: v.Name(), Message: "correct_answer is too long to type"}
	}
	if strings.Contains(q.AcceptedAnswer, "\n") {
		return &ReplyError{Validator: v.Name(), Message: "correct_answer spans multiple lines"}
	}
	return nil
}

const defaultMaxAnswerRunes = 80
