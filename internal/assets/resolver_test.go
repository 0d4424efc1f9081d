package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.custom != nil {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if resolver.custom == nil {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "styles/default.css", "custom default")
	writeFile(t, tmpDir, "shells/site.html", "<!--CONTENT-->")

	resolver, err := NewAssetResolver(tmpDir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	t.Run("custom style overrides embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("default")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		if got != "custom default" {
			t.Errorf("LoadStyle() = %q, want custom content", got)
		}
	})

	t.Run("falls back to embedded style", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle("compact")
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		embedded, _ := defaultLoader.LoadStyle("compact")
		if got != embedded {
			t.Error("LoadStyle() should return the embedded compact style")
		}
	})

	t.Run("custom shell", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadShell("site")
		if err != nil {
			t.Fatalf("LoadShell() error = %v", err)
		}
		if got != "<!--CONTENT-->" {
			t.Errorf("LoadShell() = %q, want custom shell", got)
		}
	})

	t.Run("falls back to embedded shell", func(t *testing.T) {
		t.Parallel()

		if _, err := resolver.LoadShell(DefaultShellName); err != nil {
			t.Errorf("LoadShell() error = %v", err)
		}
	})

	t.Run("validation errors do not fall back", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("../default")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("LoadStyle() error = %v, want ErrInvalidAssetName", err)
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadShell("nowhere")
		if !errors.Is(err, ErrShellNotFound) {
			t.Errorf("LoadShell() error = %v, want ErrShellNotFound", err)
		}
	})
}
