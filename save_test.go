package srcpatch

import (
	"errors"
	"testing"
)

func TestDecide(t *testing.T) {
	edits := []Edit{NewEdit("a", "b"), NewEdit("c", "d")}

	tests := []struct {
		name       string
		result     *PatchResult
		wantCommit bool
		wantReason FallbackReason
	}{
		{"No source", nil, false, ReasonNoSource},
		{"Partial", &PatchResult{HTML: "x", Applied: 1}, false, ReasonPartialPatch},
		{"Complete", &PatchResult{HTML: "x", Applied: 2}, true, ReasonNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.result, edits)
			if d.Commit != tt.wantCommit || d.Reason != tt.wantReason {
				t.Errorf("Want commit=%v reason=%q, got commit=%v reason=%q", tt.wantCommit, tt.wantReason, d.Commit, d.Reason)
			}
			if d.Commit && d.HTML != tt.result.HTML {
				t.Errorf("Committed HTML mismatch")
			}
			if !d.Commit && d.HTML != "" {
				t.Errorf("Fallback must not carry HTML")
			}
		})
	}
}

func TestDecideNoEdits(t *testing.T) {
	d := Decide(&PatchResult{HTML: "same"}, nil)
	if !d.Commit || d.HTML != "same" {
		t.Errorf("Empty edit set should commit the source unchanged, got %+v", d)
	}
}

func TestFinalizeOutput(t *testing.T) {
	cfg := DefaultConfig()
	in := "<head>\n  <script data-srcpatch-editor src=\"e.js\"></script>\n  <script src=\"app.js\"></script>\n</head>"

	got, err := FinalizeOutput(in, cfg.Marker)
	if err != nil {
		t.Fatalf("FinalizeOutput failed: %v", err)
	}
	want := "<head>\n  <script src=\"app.js\"></script>\n</head>"
	if got != want {
		t.Errorf("Strip mismatch.\nWant: %q\nGot:  %q", want, got)
	}

	cfg.Marker.Policy = MarkerRetain
	if got, _ := FinalizeOutput(in, cfg.Marker); got != in {
		t.Errorf("Retain should not change output")
	}

	cfg.Marker.Policy = "sometimes"
	if _, err := FinalizeOutput(in, cfg.Marker); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestStripMarkerBadPattern(t *testing.T) {
	if _, err := StripMarker("x", "("); err == nil {
		t.Errorf("Expected compile error")
	}
	if got, _ := StripMarker("x", ""); got != "x" {
		t.Errorf("Empty pattern should be a no-op")
	}
}
