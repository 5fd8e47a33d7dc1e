package srcpatch

import (
	"net/url"
	"sort"
	"strings"
)

// ActivationRequested reports whether u asks for editing: its fragment equals
// the configured marker, or its query carries the configured flag value.
func (a Activation) ActivationRequested(u *url.URL) bool {
	if u == nil {
		return false
	}
	if a.Fragment != "" && strings.TrimPrefix(u.Fragment, "#") == a.Fragment {
		return true
	}
	if a.QueryParam == "" {
		return false
	}
	for _, v := range u.Query()[a.QueryParam] {
		if v == a.QueryValue {
			return true
		}
	}
	return false
}

// MatchesShortcut reports whether combo names the configured key combination.
// Modifier order and case do not matter: "Shift+Ctrl+E" matches "ctrl+shift+e".
func (a Activation) MatchesShortcut(combo string) bool {
	return a.Shortcut != "" && normalizeCombo(combo) == normalizeCombo(a.Shortcut)
}

func normalizeCombo(combo string) string {
	parts := strings.Split(strings.ToLower(strings.ReplaceAll(combo, " ", "")), "+")
	if len(parts) > 1 {
		mods := parts[:len(parts)-1]
		sort.Strings(mods)
	}
	return strings.Join(parts, "+")
}

// HandleURL enables editing when u requests it. It returns whether it did.
func (e *Editor) HandleURL(u *url.URL) bool {
	if e.IsActive() || !e.cfg.Activation.ActivationRequested(u) {
		return false
	}
	e.Enable()
	return true
}

// HandleKey toggles editing when combo is the activation shortcut.
func (e *Editor) HandleKey(combo string) bool {
	if !e.cfg.Activation.MatchesShortcut(combo) {
		return false
	}
	e.Toggle()
	return true
}
