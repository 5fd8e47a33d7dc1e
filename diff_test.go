package srcpatch

import (
	"testing"
)

func TestAlignPositional(t *testing.T) {
	tests := []struct {
		name string
		old  []string
		new  []string
		want []Edit
	}{
		{
			name: "No changes",
			old:  []string{"Hello", "World"},
			new:  []string{"Hello", "World"},
			want: nil,
		},
		{
			name: "One change",
			old:  []string{"Hello", "World"},
			new:  []string{"Hello", "Planet"},
			want: []Edit{{Old: "World", New: "Planet"}},
		},
		{
			name: "Shorter edited side",
			old:  []string{"A", "B", "C"},
			new:  []string{"A", "X"},
			want: []Edit{{Old: "B", New: "X"}},
		},
		{
			name: "Inner whitespace only",
			old:  []string{"Hello\n   world"},
			new:  []string{"Hello world"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignPositional(tt.old, tt.new)
			if len(got) != len(tt.want) {
				t.Fatalf("Edits count mismatch. Want %d, Got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i].Old != tt.want[i].Old || got[i].New != tt.want[i].New {
					t.Errorf("Edit[%d]: want %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestAlignLCS(t *testing.T) {
	tests := []struct {
		name string
		old  []string
		new  []string
		want []Edit
	}{
		{
			name: "Removed element",
			old:  []string{"A", "B", "C", "D"},
			new:  []string{"A", "C", "D2"},
			want: []Edit{{Old: "D", New: "D2"}},
		},
		{
			name: "Replaced in place",
			old:  []string{"A", "B", "C"},
			new:  []string{"A", "b", "C"},
			want: []Edit{{Old: "B", New: "b"}},
		},
		{
			name: "Keeps original token spacing",
			old:  []string{"Same", "Old\n  text"},
			new:  []string{"Same", "New text"},
			want: []Edit{{Old: "Old\n  text", New: "New text"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignLCS(tt.old, tt.new)
			if len(got) != len(tt.want) {
				t.Fatalf("Edits count mismatch. Want %d, Got %d (%v)", len(tt.want), len(got), got)
			}
			for i := range got {
				if got[i].Old != tt.want[i].Old || got[i].New != tt.want[i].New {
					t.Errorf("Edit[%d]: want %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}
