// Package credential stores the API key used to reach the question
// generation service. The key is opaque to the rest of the app.
package credential

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
)

var (
	// ErrNotFound is returned by Get when no key is stored.
	ErrNotFound = errors.New("no API key stored")

	// ErrEmptyKey is returned by Set for a blank key.
	ErrEmptyKey = errors.New("API key is empty")

	// ErrReadOnly is returned when writing to a store that cannot persist.
	ErrReadOnly = errors.New("credential store is read-only")
)

// Store holds at most one API key.
type Store interface {
	Has(ctx context.Context) (bool, error)
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Settings is the key/value persistence SQLStore writes through.
type Settings interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

const settingsKey = "api_key"

// SQLStore persists the key in the settings table.
type SQLStore struct {
	settings Settings
}

// NewSQLStore returns a Store backed by settings.
func NewSQLStore(settings Settings) *SQLStore {
	return &SQLStore{settings: settings}
}

func (s *SQLStore) Has(ctx context.Context) (bool, error) {
	_, err := s.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *SQLStore) Get(ctx context.Context) (string, error) {
	v, ok, err := s.settings.Get(ctx, settingsKey)
	if err != nil {
		return "", err
	}
	if !ok || v == "" {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *SQLStore) Set(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	return s.settings.Set(ctx, settingsKey, key)
}

func (s *SQLStore) Clear(ctx context.Context) error {
	return s.settings.Delete(ctx, settingsKey)
}

// EnvStore reads the key from an environment variable. It cannot be
// written.
type EnvStore struct {
	Var string
}

func (s EnvStore) Has(ctx context.Context) (bool, error) {
	_, err := s.Get(ctx)
	return err == nil, nil
}

func (s EnvStore) Get(context.Context) (string, error) {
	if v := strings.TrimSpace(os.Getenv(s.Var)); v != "" {
		return v, nil
	}
	return "", ErrNotFound
}

func (s EnvStore) Set(context.Context, string) error { return ErrReadOnly }
func (s EnvStore) Clear(context.Context) error       { return ErrReadOnly }

// StaticStore always holds Key. It stands in for a real key with
// providers that do not authenticate, such as a local Ollama server.
type StaticStore struct {
	Key string
}

func (s StaticStore) Has(context.Context) (bool, error) { return s.Key != "", nil }
func (s StaticStore) Set(context.Context, string) error { return ErrReadOnly }
func (s StaticStore) Clear(context.Context) error       { return ErrReadOnly }

func (s StaticStore) Get(context.Context) (string, error) {
	if s.Key == "" {
		return "", ErrNotFound
	}
	return s.Key, nil
}

// MemoryStore keeps the key in memory for the lifetime of the process.
type MemoryStore struct {
	mu  sync.Mutex
	key string
}

func (s *MemoryStore) Has(ctx context.Context) (bool, error) {
	_, err := s.Get(ctx)
	return err == nil, nil
}

func (s *MemoryStore) Get(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.key == "" {
		return "", ErrNotFound
	}
	return s.key, nil
}

func (s *MemoryStore) Set(_ context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = key
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	return nil
}

// Chain consults stores in order. Reads return the first key found;
// writes go to the first store that accepts them.
type Chain []Store

func (c Chain) Has(ctx context.Context) (bool, error) {
	for _, s := range c {
		ok, err := s.Has(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (c Chain) Get(ctx context.Context) (string, error) {
	for _, s := range c {
		v, err := s.Get(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", ErrNotFound
}

func (c Chain) Set(ctx context.Context, key string) error {
	for _, s := range c {
		err := s.Set(ctx, key)
		if errors.Is(err, ErrReadOnly) {
			continue
		}
		return err
	}
	return ErrReadOnly
}

func (c Chain) Clear(ctx context.Context) error {
	for _, s := range c {
		if err := s.Clear(ctx); err != nil && !errors.Is(err, ErrReadOnly) {
			return err
		}
	}
	return nil
}

// Mask returns a display form of key that reveals only its last four
// characters.
func Mask(key string) string {
	r := []rune(key)
	if len(r) <= 4 {
		return strings.Repeat("•", len(r))
	}
	return strings.Repeat("•", 8) + string(r[len(r)-4:])
}
