package srcpatch

import (
	"fmt"
	"regexp"
)

// Decide applies the all-or-nothing save policy to the result of patching
// edits. A nil result means the source buffer was never obtained. A result
// that applied fewer edits than were collected is discarded whole: a file with
// silently dropped edits is worse than a visibly different fallback export.
func Decide(result *PatchResult, edits []Edit) Decision {
	if result == nil {
		return Decision{Reason: ReasonNoSource}
	}
	if !result.Complete(len(edits)) {
		return Decision{Reason: ReasonPartialPatch}
	}
	return Decision{Commit: true, HTML: result.HTML}
}

// FinalizeOutput applies the marker policy to committed HTML. With
// MarkerStrip every match of the marker pattern is removed; with
// MarkerRetain the HTML is returned unchanged.
func FinalizeOutput(htmlText string, m Marker) (string, error) {
	switch m.Policy {
	case MarkerRetain:
		return htmlText, nil
	case MarkerStrip:
		return StripMarker(htmlText, m.Pattern)
	default:
		return "", fmt.Errorf("%w: unknown marker policy %q", ErrInvalidConfig, m.Policy)
	}
}

// StripMarker removes every match of pattern from htmlText.
func StripMarker(htmlText, pattern string) (string, error) {
	if pattern == "" {
		return htmlText, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("compiling marker pattern: %w", err)
	}
	return re.ReplaceAllLiteralString(htmlText, ""), nil
}
