package srcpatch

import (
	"testing"
	"time"
)

func TestExportFileName(t *testing.T) {
	ts := time.Date(2026, 10, 19, 14, 25, 1, 0, time.UTC)
	tests := []struct {
		title string
		want  string
	}{
		{"My Page", "my-page-20261019-142501.html"},
		{"  Résumé: 2026 / Draft!  ", "r-sum-2026-draft-20261019-142501.html"},
		{"", "page-20261019-142501.html"},
		{"***", "page-20261019-142501.html"},
	}
	for _, tt := range tests {
		if got := ExportFileName(tt.title, ts); got != tt.want {
			t.Errorf("ExportFileName(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	doc, _ := ParseHTML(`<html><head><title> Demo page </title></head><body><h1>x</h1></body></html>`)
	if got := Title(doc); got != "Demo page" {
		t.Errorf("Want 'Demo page', got %q", got)
	}
	doc, _ = ParseHTML(`<p>No title</p>`)
	if got := Title(doc); got != "" {
		t.Errorf("Want empty title, got %q", got)
	}
}
