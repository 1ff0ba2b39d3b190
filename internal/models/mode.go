package models

// ReplyModeID identifies the only mode whose prompt takes both the received
// message and the user's reply elements.
const ReplyModeID = "repondre"

// Mode is a named text transformation backed by a prompt template.
type Mode struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Prompt string `json:"prompt"`
	Order  int    `json:"order,omitempty"`
	Page   int    `json:"page,omitempty"`
	System bool   `json:"system"`
}

// ModeRegistry is the persisted catalog of system and custom modes.
// A nil System, Custom or Order means the key was absent from the stored file.
type ModeRegistry struct {
	System   map[string]Mode `json:"system"`
	Custom   map[string]Mode `json:"custom"`
	Order    []string        `json:"order"`
	Sequence int             `json:"sequence,omitempty"`
}

// Clone returns a deep copy so callers never share maps with the store.
func (r *ModeRegistry) Clone() *ModeRegistry {
	if r == nil {
		return nil
	}
	out := &ModeRegistry{Sequence: r.Sequence}
	if r.System != nil {
		out.System = make(map[string]Mode, len(r.System))
		for id, m := range r.System {
			out.System[id] = m
		}
	}
	if r.Custom != nil {
		out.Custom = make(map[string]Mode, len(r.Custom))
		for id, m := range r.Custom {
			out.Custom[id] = m
		}
	}
	if r.Order != nil {
		out.Order = append([]string{}, r.Order...)
	}
	return out
}

// All merges system and custom modes. Custom entries win on id clashes.
func (r *ModeRegistry) All() map[string]Mode {
	all := make(map[string]Mode, len(r.System)+len(r.Custom))
	for id, m := range r.System {
		all[id] = m
	}
	for id, m := range r.Custom {
		all[id] = m
	}
	return all
}
