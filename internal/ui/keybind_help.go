package ui

import (
	"sort"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// newHelpModel returns a bubbles help model using the shared styles.
func newHelpModel() help.Model {
	m := help.New()
	m.Styles.ShortKey = Styles.Key
	m.Styles.ShortDesc = Styles.Hint
	m.Styles.ShortSeparator = Styles.Hint
	return m
}

// RenderKeybindHelp renders the one-line hint bar shown while the leader
// sequence is being typed, e.g. "SPC  o toggle axis • q quit • esc cancel".
func RenderKeybindHelp(h *KeyHandler) string {
	if h == nil {
		return ""
	}
	hints := h.Registry.LeaderHints(h.Sequence())
	if len(hints) == 0 {
		return ""
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	bindings = append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))

	return Styles.Hint.Render(h.Sequence()) + "  " + newHelpModel().ShortHelpView(bindings)
}
