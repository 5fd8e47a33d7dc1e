package srcpatch

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Exit codes of the offline reconciler.
const (
	ExitOK        = 0
	ExitUsage     = 1
	ExitUnmatched = 2
	ExitDrift     = 3
)

// ExtractTokens returns the visible text runs of an HTML document in order:
// text between tag boundaries, outside script and style, with entities
// decoded, trimmed, and with empty runs dropped.
func ExtractTokens(src string) []string {
	var tokens []string
	z := html.NewTokenizer(strings.NewReader(src))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF, or a read error a string reader never produces.
			return tokens
		case html.StartTagToken:
			if nonRendering(z) {
				skip++
			}
		case html.EndTagToken:
			if skip > 0 && nonRendering(z) {
				skip--
			}
		case html.TextToken:
			if skip > 0 {
				continue
			}
			if t := strings.TrimSpace(string(z.Text())); t != "" {
				tokens = append(tokens, t)
			}
		}
	}
}

func nonRendering(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch atom.Lookup(name) {
	case atom.Script, atom.Style:
		return true
	}
	return false
}

// ReconcileReport describes one offline reconciliation.
type ReconcileReport struct {
	OriginalTokens int          `json:"original_tokens"`
	EditedTokens   int          `json:"edited_tokens"`
	Edits          []Edit       `json:"edits"`
	Conflicts      []Conflict   `json:"conflicts,omitempty"`
	Result         *PatchResult `json:"result"`
}

// Drift reports whether the two documents have different token counts, in
// which case positional pairing is only best-effort.
func (r *ReconcileReport) Drift() bool {
	return r.OriginalTokens != r.EditedTokens
}

// ExitCode maps the report onto the reconciler's exit status. Unmatched
// edits take precedence over drift.
func (r *ReconcileReport) ExitCode() int {
	switch {
	case !r.Result.Complete(len(r.Edits)):
		return ExitUnmatched
	case r.Drift():
		return ExitDrift
	default:
		return ExitOK
	}
}

// Reconcile recovers the edits between original and a DOM-exported copy of
// it, and applies them to original with the same patcher the live editor
// uses. No live document is involved.
func Reconcile(original, exported string, cfg Config) *ReconcileReport {
	origTokens := ExtractTokens(original)
	editTokens := ExtractTokens(exported)

	var edits []Edit
	if cfg.Align == AlignLCSMode {
		edits = AlignLCS(origTokens, editTokens)
	} else {
		edits = AlignPositional(origTokens, editTokens)
	}

	p := NewPatcher(cfg)
	report := &ReconcileReport{
		OriginalTokens: len(origTokens),
		EditedTokens:   len(editTokens),
		Edits:          edits,
		Conflicts:      DetectConflicts(original, edits, p),
		Result:         p.Patch(original, edits),
	}

	log := cfg.logger()
	if report.Drift() {
		log.Warn("token counts differ, mapping is best-effort",
			"original", report.OriginalTokens, "edited", report.EditedTokens)
	}
	for _, u := range report.Result.Unmatched {
		log.Warn("edit not mapped", "old", u.OldPreview, "new", u.NewPreview,
			"candidates", u.Candidates, "suggestion", u.Suggestion)
	}
	return report
}
