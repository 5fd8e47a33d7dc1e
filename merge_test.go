package srcpatch

import (
	"testing"
)

func TestDetectConflicts(t *testing.T) {
	src := `<html><head><title>Read more</title></head><body><a>Read more</a><p>Once</p><a>Read  more</a></body></html>`

	tests := []struct {
		name      string
		edits     []Edit
		wantTypes []string
	}{
		{
			name:      "Unique text",
			edits:     []Edit{NewEdit("Once", "Twice")},
			wantTypes: nil,
		},
		{
			name:      "Duplicate in body, head occurrence ignored",
			edits:     []Edit{NewEdit("Read more", "More")},
			wantTypes: []string{ConflictDuplicate},
		},
		{
			name:      "Contradictory edits",
			edits:     []Edit{NewEdit("Read more", "More"), NewEdit("Read   more", "Details")},
			wantTypes: []string{ConflictDuplicate, ConflictDirect},
		},
		{
			name:      "Same edit twice is not contradictory",
			edits:     []Edit{NewEdit("Once", "Twice"), NewEdit("Once", "Twice")},
			wantTypes: nil,
		},
		{
			name:      "No-op edits are ignored",
			edits:     []Edit{{Old: "Read more", New: "Read more"}},
			wantTypes: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conflicts := DetectConflicts(src, tt.edits, nil)
			if len(conflicts) != len(tt.wantTypes) {
				t.Fatalf("Want %d conflicts, got %d: %+v", len(tt.wantTypes), len(conflicts), conflicts)
			}
			for i, c := range conflicts {
				if c.Type != tt.wantTypes[i] {
					t.Errorf("Conflict[%d]: want %s, got %s", i, tt.wantTypes[i], c.Type)
				}
			}
		})
	}
}

func TestDetectConflictsDoesNotChangePatch(t *testing.T) {
	src := `<body><p>x</p><p>x</p></body>`
	edits := []Edit{NewEdit("x", "y")}
	before := Patch(src, edits).HTML
	_ = DetectConflicts(src, edits, nil)
	if after := Patch(src, edits).HTML; after != before {
		t.Errorf("Patch output changed: %s vs %s", before, after)
	}
}

func TestDetectConflictsCountsEntitySpellings(t *testing.T) {
	src := `<body><p>Caf&eacute;</p><p>Café</p><p>Caf&#233;</p><p>Caf&egrave;</p></body>`
	conflicts := DetectConflicts(src, []Edit{NewEdit("Café", "Bar")}, nil)
	if len(conflicts) != 1 || conflicts[0].Type != ConflictDuplicate {
		t.Fatalf("Want one duplicate conflict, got %+v", conflicts)
	}
	if want := `"Café" occurs 3 times in the body`; conflicts[0].Description != want {
		t.Errorf("Want %s, got %s", want, conflicts[0].Description)
	}
}
