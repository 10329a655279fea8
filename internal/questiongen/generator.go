package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mathcoach/internal/llm"
)

// Client produces questions from a generative text service. Every error
// returned is a *GenerationError.
type Client interface {
	Generate(ctx context.Context, req Request, credential string) (*Question, error)
}

// ProviderFactory builds an llm.Provider authenticated with credential.
type ProviderFactory func(ctx context.Context, credential string) (llm.Provider, error)

// Observer is notified of every finished generation. cause is empty on
// success.
type Observer interface {
	ObserveGeneration(cause Cause, followUp bool, elapsed time.Duration)
}

// Generator implements Client on top of an llm.Provider.
type Generator struct {
	factory  ProviderFactory
	config   Config
	observer Observer

	mu         sync.Mutex
	credential string
	provider   llm.Provider
}

// New creates a Generator that resolves providers through factory. The
// most recently used provider is cached until the credential changes.
func New(factory ProviderFactory, cfg Config) *Generator {
	return &Generator{factory: factory, config: cfg}
}

// NewWithProvider creates a Generator that always uses p, whatever the
// credential.
func NewWithProvider(p llm.Provider, cfg Config) *Generator {
	return New(func(context.Context, string) (llm.Provider, error) { return p, nil }, cfg)
}

// SetObserver installs an observer for generation outcomes.
func (g *Generator) SetObserver(o Observer) {
	g.observer = o
}

// questionOutput is the raw reply before validation.
type questionOutput struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// Generate asks the provider for one question and validates the reply.
// Failures of any kind, panics included, come back as *GenerationError.
func (g *Generator) Generate(ctx context.Context, req Request, credential string) (q *Question, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			q = nil
			err = &GenerationError{Cause: CauseUnknown, Err: fmt.Errorf("provider panic: %v", r)}
		}
		if g.observer != nil {
			var cause Cause
			if ge, ok := err.(*GenerationError); ok {
				cause = ge.Cause
			}
			g.observer.ObserveGeneration(cause, req.FollowUp, time.Since(start))
		}
	}()

	q, err = g.generate(ctx, req, credential)
	if err != nil {
		return nil, classify(err)
	}
	return q, nil
}

func (g *Generator) generate(ctx context.Context, req Request, credential string) (*Question, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	purpose := "question"
	if req.FollowUp {
		purpose = "follow-up"
	}
	ctx = llm.WithPurpose(ctx, purpose)

	provider, err := g.providerFor(ctx, credential)
	if err != nil {
		return nil, err
	}

	resp, err := provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &Question{
		Prompt:         raw.Question,
		AcceptedAnswer: raw.CorrectAnswer,
		Explanation:    raw.Explanation,
	}

	for _, v := range g.config.Validators {
		if verr := v.Validate(q, req); verr != nil {
			return nil, verr
		}
	}

	return q, nil
}

func (g *Generator) providerFor(ctx context.Context, credential string) (llm.Provider, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.provider != nil && g.credential == credential {
		return g.provider, nil
	}

	p, err := g.factory(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("creating provider: %w", err)
	}
	g.provider = p
	g.credential = credential
	return p, nil
}
