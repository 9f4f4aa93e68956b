package statusbar

import (
	"strings"
	"testing"

	"github.com/ewhitmore/taskdeck/internal/types"
	"github.com/ewhitmore/taskdeck/internal/ui/styles"
)

func TestStatusBar_Render(t *testing.T) {
	sb := New(types.ModeNormal, 120, styles.New())
	out := sb.Render()

	if !strings.Contains(out, "NORMAL") {
		t.Errorf("status bar missing mode badge")
	}
	if !strings.Contains(out, "q:quit") {
		t.Errorf("status bar missing normal-mode hints")
	}
}

func TestStatusBar_SelectModeHints(t *testing.T) {
	sb := New(types.ModeSelect, 120, styles.New())
	out := sb.Render()

	if !strings.Contains(out, "SELECT") {
		t.Errorf("status bar missing select mode badge")
	}
	if !strings.Contains(out, "D:delete selected") {
		t.Errorf("status bar missing select-mode hints")
	}
}

func TestGetHints_UnknownMode(t *testing.T) {
	if got := GetHints(types.Mode(99)); got != "" {
		t.Errorf("GetHints(unknown) = %q, want empty", got)
	}
}
