package help

import (
	"strings"
	"testing"
)

func TestHelpScreen_ListsEveryStep(t *testing.T) {
	view := New().View(120, 40)
	if len(Steps) != 7 {
		t.Fatalf("got %d steps, want 7", len(Steps))
	}
	for i := range Steps {
		if !strings.Contains(view, string(rune('1'+i))+".") {
			t.Errorf("step %d missing from view", i+1)
		}
	}
}
