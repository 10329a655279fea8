package curriculum

import "fmt"

// Cycle is the curriculum stage a question is pitched at.
type Cycle string

const (
	CycleJunior Cycle = "junior" // Junior Cycle
	CycleSenior Cycle = "senior" // Leaving Certificate
)

// Cycles lists every cycle in display order.
var Cycles = []Cycle{CycleJunior, CycleSenior}

// Label returns the name learners know the cycle by.
func (c Cycle) Label() string {
	switch c {
	case CycleJunior:
		return "Junior Cycle"
	case CycleSenior:
		return "Leaving Cert"
	}
	return "Select Cycle"
}

// Topic is the strand of the syllabus a question is drawn from.
type Topic string

const (
	TopicAlgebra      Topic = "algebra"
	TopicGeometry     Topic = "geometry"
	TopicTrigonometry Topic = "trigonometry"
	TopicFunctions    Topic = "functions"
	TopicProbability  Topic = "probability"
)

// Topics lists every topic in display order.
var Topics = []Topic{TopicAlgebra, TopicGeometry, TopicTrigonometry, TopicFunctions, TopicProbability}

// Label returns the capitalised topic name.
func (t Topic) Label() string {
	switch t {
	case TopicAlgebra:
		return "Algebra"
	case TopicGeometry:
		return "Geometry"
	case TopicTrigonometry:
		return "Trigonometry"
	case TopicFunctions:
		return "Functions"
	case TopicProbability:
		return "Probability"
	}
	return "Select Topic"
}

// Difficulty is the learner-chosen difficulty, only used in smart mode.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyExam   Difficulty = "exam"
)

// Difficulties lists every difficulty in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyExam}

// Label returns the display name for the difficulty.
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyExam:
		return "Exam-style"
	}
	return "Select Difficulty"
}

// ParseCycle converts user input to a Cycle. The empty string parses to
// the unset cycle.
func ParseCycle(s string) (Cycle, error) {
	if s == "" {
		return "", nil
	}
	for _, c := range Cycles {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown cycle %q (want junior or senior)", s)
}

// ParseTopic converts user input to a Topic. The empty string parses to
// the unset topic.
func ParseTopic(s string) (Topic, error) {
	if s == "" {
		return "", nil
	}
	for _, t := range Topics {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown topic %q", s)
}

// ParseDifficulty converts user input to a Difficulty. The empty string
// parses to the unset difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return "", nil
	}
	for _, d := range Difficulties {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, medium or exam)", s)
}
