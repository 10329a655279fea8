package questiongen

import "time"

// Config controls the behavior of the Generator.
type Config struct {
	// Validators run in order on every reply. The first failure stops
	// the pipeline.
	Validators []Validator

	// MaxTokens is the token budget for the reply.
	MaxTokens int

	// Temperature controls output randomness (0.0-1.0).
	Temperature float64

	// Timeout bounds a single Generate call, retries included. Zero
	// means no extra deadline beyond the caller's context.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerLengthValidator{MaxRunes: defaultMaxAnswerRunes},
		},
		MaxTokens:   700,
		Temperature: 0.7,
		Timeout:     30 * time.Second,
	}
}
