package graph

import (
	"testing"

	"github.com/matzehuels/featuremap/pkg/panel"
	"github.com/matzehuels/featuremap/pkg/sitemap"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		wantLen  int
	}{
		{"short text", "hello", 10, 1},
		{"exact length", "hello world", 11, 1},
		{"needs wrap", "hello world foo", 6, 3},
		{"with newlines", "hello\nworld", 20, 1},
		{"empty", "", 10, 1},
		{"long single word", "supercalifragilisticexpialidocious", 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := wrapText(tt.text, tt.maxChars)
			if len(lines) != tt.wantLen {
				t.Errorf("wrapText(%q, %d) returned %d lines, want %d: %v",
					tt.text, tt.maxChars, len(lines), tt.wantLen, lines)
			}
		})
	}
}

func TestLayoutContent(t *testing.T) {
	f, _ := sitemap.Default().Feature("forum")
	lines := layoutContent(panel.Detail(f, panel.DefaultOptions()), 226)

	if len(lines) == 0 || lines[0].text != "Community Forum" || !lines[0].bold {
		t.Fatalf("first line = %+v, want bold title", lines[0])
	}

	var bullets, headings int
	for _, l := range lines {
		if l.bold && l.size == headingSize {
			headings++
		}
		if len(l.text) > 0 && []rune(l.text)[0] == '•' {
			bullets++
		}
	}
	if bullets != 3 {
		t.Errorf("bullets = %d, want 3", bullets)
	}
	if headings != 3 {
		t.Errorf("headings = %d, want 3 (Details, Recommended Tool, Integration Possibilities)", headings)
	}
}
