package statusbar

import "github.com/ewhitmore/taskdeck/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "hjkl:move  H/L:change status  J/K:reorder  d:done  c:new  x:delete  v:select  r:refresh  q:quit"
	case types.ModeSelect:
		return "space:toggle  D:delete selected  1-4:set status  esc:cancel"
	default:
		return ""
	}
}
