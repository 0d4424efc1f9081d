package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		contains string
	}{
		{
			name:     "empty paths",
			paths:    []string{},
			contains: "--config",
		},
		{
			name:     "with paths",
			paths:    []string{"./site.yaml", "/home/u/.config/go-nbsite/site.yaml"},
			contains: "or create /home/u/.config/go-nbsite/site.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForConfigNotFound(tt.paths)

			if !strings.Contains(hint, "hint:") {
				t.Error("expected hint prefix")
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForLayoutNotFound(t *testing.T) {
	tests := []struct {
		name      string
		available []string
		contains  string
	}{
		{"no layouts", nil, "site.layoutsDir"},
		{"with layouts", []string{"base.html", "blog/post.html"}, "available: base.html, blog/post.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := ForLayoutNotFound(tt.available)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForStyleNotFound(t *testing.T) {
	if hint := ForStyleNotFound(nil); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForStyleNotFound([]string{"default", "compact"}); !strings.Contains(hint, "default, compact") {
		t.Errorf("expected styles listed, got %q", hint)
	}
}

func TestMarkerHints(t *testing.T) {
	if hint := ForTemplateMarker(); !strings.Contains(hint, "<!--TEMPLATE:") {
		t.Errorf("ForTemplateMarker() = %q", hint)
	}
	if hint := ForContentMarker(); !strings.Contains(hint, "<!--CONTENT-->") {
		t.Errorf("ForContentMarker() = %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	// All hints should start with newline, spaces, and "hint:"
	hints := []string{
		ForOutputDirectory(),
		ForSourceDirectory("src"),
		ForTemplateMarker(),
		ForContentMarker(),
		ForInvalidNotebook(),
		ForLayoutNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}
