// Package apikey is the screen for entering the API key used to generate
// questions.
package apikey

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/screen"
	"github.com/abhisek/mathcoach/internal/ui/components"
	"github.com/abhisek/mathcoach/internal/ui/layout"
	"github.com/abhisek/mathcoach/internal/ui/theme"
)

const (
	savedMessage   = "✅ API key saved."
	clearedMessage = "✅ API key removed."
)

// ChangedMsg is emitted after the stored key was saved or removed.
type ChangedMsg struct {
	Present bool
}

// APIKeyScreen takes a key in a masked input and writes it to the
// credential store.
type APIKeyScreen struct {
	creds  credential.Store
	input  components.TextInput
	status string
	failed bool
	masked string
}

var _ screen.Screen = (*APIKeyScreen)(nil)
var _ screen.KeyHintProvider = (*APIKeyScreen)(nil)

// New creates the screen. The masked form of a stored key is shown so the
// learner can tell one is present.
func New(creds credential.Store) *APIKeyScreen {
	s := &APIKeyScreen{
		creds: creds,
		input: components.NewTextInput("API key", "Paste your API key", true, 256),
	}
	if key, err := creds.Get(context.Background()); err == nil {
		s.masked = credential.Mask(key)
	}
	return s
}

func (s *APIKeyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *APIKeyScreen) Title() string {
	return "API Key"
}

func (s *APIKeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Ctrl+D", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *APIKeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, s.save()
		case "ctrl+d":
			return s, s.clear()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *APIKeyScreen) save() tea.Cmd {
	key := s.input.Value()
	err := s.creds.Set(context.Background(), key)
	switch {
	case errors.Is(err, credential.ErrEmptyKey):
		s.fail("❌ Please enter your API key.")
		return nil
	case errors.Is(err, credential.ErrReadOnly):
		s.fail("❌ The key comes from the environment and cannot be changed here.")
		return nil
	case err != nil:
		s.fail("❌ Could not save the key: " + err.Error())
		return nil
	}

	s.input.Reset()
	s.masked = credential.Mask(key)
	s.status, s.failed = savedMessage, false
	return changed(true)
}

func (s *APIKeyScreen) clear() tea.Cmd {
	ctx := context.Background()
	if err := s.creds.Clear(ctx); err != nil {
		s.fail("❌ Could not remove the key: " + err.Error())
		return nil
	}

	s.masked = ""
	present, _ := s.creds.Has(ctx)
	if present {
		// Another store in the chain, such as the environment, still has one.
		if key, err := s.creds.Get(ctx); err == nil {
			s.masked = credential.Mask(key)
		}
	}
	s.status, s.failed = clearedMessage, false
	return changed(present)
}

func (s *APIKeyScreen) fail(msg string) {
	s.status, s.failed = msg, true
}

func changed(present bool) tea.Cmd {
	return func() tea.Msg { return ChangedMsg{Present: present} }
}

func (s *APIKeyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	current := theme.Hint.Render("No key stored.")
	if s.masked != "" {
		current = theme.Subtitle.Render("Current key: " + s.masked)
	}

	body := theme.Title.Render("🔑 API Key") + "\n\n" +
		theme.Body.Render("Questions are written by an AI model. Paste the API key for your provider; it is stored on this computer only.") + "\n\n" +
		current + "\n\n" +
		s.input.View()

	if s.status != "" {
		style := theme.Correct
		if s.failed {
			style = theme.Incorrect
		}
		body += "\n\n" + style.Render(s.status)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.ArcadeCard(body, cw))
}
