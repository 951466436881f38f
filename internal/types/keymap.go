package types

import "strings"

const (
	KeyActionQuit          = "quit"
	KeyActionCycleView     = "cycle_view"
	KeyActionSubmit        = "submit"
	KeyActionStartSession  = "start_session"
	KeyActionNewSession    = "new_session"
	KeyActionReset         = "reset"
	KeyActionPrevSheet     = "prev_sheet"
	KeyActionNextSheet     = "next_sheet"
	KeyActionMoveUp        = "move_up"
	KeyActionMoveDown      = "move_down"
	KeyActionLoadSession   = "load_session"
	KeyActionDeleteSession = "delete_session"
	KeyActionCopyReply     = "copy_reply"
	KeyActionSelectFile    = "select_file"
	KeyActionUploadFile    = "upload_file"
	KeyActionDeleteFile    = "delete_file"
	KeyActionRefresh       = "refresh"
	KeyActionSwitchFiles   = "switch_files"
)

type Keymap struct {
	Bindings map[string]string `json:"bindings" toml:"bindings"`
}

func DefaultKeymap() *Keymap {
	return &Keymap{
		Bindings: map[string]string{
			KeyActionQuit:          "ctrl+c",
			KeyActionCycleView:     "tab",
			KeyActionSubmit:        "enter",
			KeyActionStartSession:  "ctrl+s",
			KeyActionNewSession:    "ctrl+n",
			KeyActionReset:         "ctrl+r",
			KeyActionPrevSheet:     "ctrl+left",
			KeyActionNextSheet:     "ctrl+right",
			KeyActionMoveUp:        "up",
			KeyActionMoveDown:      "down",
			KeyActionLoadSession:   "ctrl+o",
			KeyActionDeleteSession: "ctrl+d",
			KeyActionCopyReply:     "ctrl+y",
			KeyActionSelectFile:    "enter",
			KeyActionUploadFile:    "u",
			KeyActionDeleteFile:    "d",
			KeyActionRefresh:       "r",
			KeyActionSwitchFiles:   "ctrl+t",
		},
	}
}

// WithOverrides returns a copy with the known actions in overrides rebound.
// Unknown actions and blank keys are ignored.
func (k *Keymap) WithOverrides(overrides map[string]string) *Keymap {
	out := &Keymap{Bindings: map[string]string{}}
	if k != nil {
		for action, key := range k.Bindings {
			out.Bindings[action] = key
		}
	}
	for action, key := range overrides {
		action = strings.ToLower(strings.TrimSpace(action))
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if _, ok := out.Bindings[action]; !ok {
			continue
		}
		out.Bindings[action] = key
	}
	return out
}

func (k *Keymap) Key(action string) string {
	if k == nil {
		return ""
	}
	return k.Bindings[action]
}

func (k *Keymap) Matches(key, action string) bool {
	bound := k.Key(action)
	return bound != "" && strings.EqualFold(bound, key)
}
