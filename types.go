package srcpatch

import "strings"

// NodePath represents the traversal steps from the root to a target node.
// Example: [0, 1, 3] means root -> child[0] -> child[1] -> child[3]
type NodePath []int

// Edit is one observed text change: the text a node held when editing began
// and the text it holds now. Both sides are trimmed.
type Edit struct {
	Old  string   `json:"old"`
	New  string   `json:"new"`
	Path NodePath `json:"path,omitempty"` // Live node that produced the edit. Empty for offline edits.
}

// NewEdit builds an Edit from untrimmed text.
func NewEdit(oldText, newText string) Edit {
	return Edit{Old: strings.TrimSpace(oldText), New: strings.TrimSpace(newText)}
}

// Noop reports whether the patcher skips this edit without searching.
func (e Edit) Noop() bool {
	return strings.TrimSpace(e.Old) == "" || strings.TrimSpace(e.New) == "" || e.Old == e.New
}

// UnmatchedEdit is an edit the patcher could not place in the source,
// with enough context to tell why.
type UnmatchedEdit struct {
	Edit       Edit   `json:"edit"`
	OldPreview string `json:"old_preview"`
	NewPreview string `json:"new_preview"`
	Candidates int    `json:"candidates"`           // Matches of the pattern anywhere in the source
	Suggestion string `json:"suggestion,omitempty"` // Closest visible text run in the source body
	Skipped    bool   `json:"skipped,omitempty"`    // Never searched: empty side or identity edit
}

// PatchResult is the output of one patch pass.
type PatchResult struct {
	HTML      string          `json:"html"`
	BaseHash  string          `json:"base_hash"` // sha256 of the source buffer the pass ran against
	Applied   int             `json:"applied"`
	Unmatched []UnmatchedEdit `json:"unmatched,omitempty"`
}

// Complete reports whether every one of n edits was applied.
func (r *PatchResult) Complete(n int) bool {
	return r != nil && r.Applied >= n
}

// Conflict is a warning about an edit whose placement in the source is
// ambiguous or contradicted by another edit.
type Conflict struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Path        NodePath `json:"path,omitempty"`
	Edits       []Edit   `json:"edits"`
}

const (
	ConflictDuplicate = "duplicate" // Old text occurs more than once in the body
	ConflictDirect    = "direct"    // Same old text, different new text
)

// FallbackReason says why a save could not commit a patched source.
type FallbackReason string

const (
	ReasonNone         FallbackReason = ""
	ReasonNoSource     FallbackReason = "no_source"
	ReasonPartialPatch FallbackReason = "partial_patch"
)

// Decision is the outcome of the save policy: either HTML to commit, or a
// reason the caller must use the DOM export fallback instead.
type Decision struct {
	Commit bool           `json:"commit"`
	HTML   string         `json:"html,omitempty"`
	Reason FallbackReason `json:"reason,omitempty"`
}
