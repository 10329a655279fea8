package questiongen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a maths teacher writing practice questions for Irish secondary school students.

Rules:
- Write a single self-contained question for the given cycle, topic and difficulty.
- Junior Cycle questions follow the Junior Cycle syllabus. Leaving Cert questions follow the Leaving Certificate syllabus.
- Use plain text for all maths. No LaTeX. Use ^ for powers, / for fractions, sqrt() for roots.
- The correct answer must be short enough to type on one line, in its simplest form.
- If the answer is a value of x, the correct answer may be written as "x = 3" or just "3".
- The explanation should walk through the solution step by step.`

// buildUserMessage renders the instruction for a single request.
func buildUserMessage(req Request) string {
	var b strings.Builder

	if req.FollowUp {
		fmt.Fprintf(&b, "Generate a %s follow-up maths question for Irish students in the %s.\n", req.DifficultyLabel, req.Cycle.Label())
	} else {
		fmt.Fprintf(&b, "Generate a %s maths question for Irish students in the %s.\n", difficultyPhrase(req.DifficultyLabel), req.Cycle.Label())
	}
	fmt.Fprintf(&b, "Topic: %s\n", req.Topic.Label())
	b.WriteString("Return JSON with the fields question, correct_answer and explanation.")

	return b.String()
}

func difficultyPhrase(label string) string {
	if label == "exam" {
		return "exam-style"
	}
	return label
}
