package plotly

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDescribe - Asset descriptor
// ---------------------------------------------------------------------------

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		styleBase  string
		scriptBase string
		wantStyle  string
		wantScript string
	}{
		{
			name:       "defaults",
			wantStyle:  "/assets/plotly/css/plotly.css?v=" + LibraryVersion,
			wantScript: "/assets/plotly/js/plotly.min.js?v=" + LibraryVersion,
		},
		{
			name:       "separate bases",
			styleBase:  "/static/",
			scriptBase: "https://cdn.example.com/plotly",
			wantStyle:  "/static/css/plotly.css?v=" + LibraryVersion,
			wantScript: "https://cdn.example.com/plotly/js/plotly.min.js?v=" + LibraryVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Describe(tt.styleBase, tt.scriptBase)
			all := d.Assets()
			if len(all) != 2 {
				t.Fatalf("len(Assets()) = %d, want 2", len(all))
			}
			if got := all[0].URL(); got != tt.wantStyle {
				t.Errorf("style URL = %q, want %q", got, tt.wantStyle)
			}
			if got := all[1].URL(); got != tt.wantScript {
				t.Errorf("script URL = %q, want %q", got, tt.wantScript)
			}
			for _, a := range all {
				if strings.Contains(a.Path, LibraryVersion) {
					t.Errorf("path %q should not embed the version", a.Path)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewAssetLoader - Public loader and error mapping
// ---------------------------------------------------------------------------

func TestNewAssetLoader_Embedded(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	for _, name := range []string{LoadingTemplateName, PageTemplateName} {
		if content, err := loader.LoadTemplate(name); err != nil || content == "" {
			t.Errorf("LoadTemplate(%q) = %d bytes, %v", name, len(content), err)
		}
	}

	tests := []struct {
		name    string
		load    func() error
		wantErr error
	}{
		{"missing style", func() error { _, err := loader.LoadStyle("nope"); return err }, ErrStyleNotFound},
		{"missing template", func() error { _, err := loader.LoadTemplate("nope"); return err }, ErrTemplateNotFound},
		{"traversal name", func() error { _, err := loader.LoadTemplate("../page"); return err }, ErrInvalidAssetName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := tt.load(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewAssetLoader_InvalidPath(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{file, filepath.Join(t.TempDir(), "missing")} {
		if _, err := NewAssetLoader(path); !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader(%q) error = %v, want ErrInvalidAssetPath", path, err)
		}
	}
}

func TestWithAssetPath_OverridesLoadingTemplate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o750); err != nil {
		t.Fatal(err)
	}
	custom := `<span class="plotlybars-wrapper">{{.Text}} ({{len .Bars}})</span>`
	if err := os.WriteFile(filepath.Join(dir, "templates", "loading.html"), []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	w := mustWidget(t, WithAssetPath(dir), WithLocale("fr"))
	r, err := w.RenderChart(Chart{ID: "c"})
	if err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if want := `<div id="c"><span class="plotlybars-wrapper">chargement (7)</span></div>`; r.Markup != want {
		t.Errorf("Markup = %q, want %q", r.Markup, want)
	}

	// The page template was not overridden and falls back to the embedded one.
	var out strings.Builder
	if err := w.NewPage().Render(&out, r.Markup); err != nil {
		t.Fatalf("Page.Render() error = %v", err)
	}
	if !strings.Contains(out.String(), `<html lang="fr">`) {
		t.Errorf("page should use the embedded template:\n%s", out.String())
	}
}

// ---------------------------------------------------------------------------
// TestStylesheet - Loading indicator stylesheet
// ---------------------------------------------------------------------------

func TestStylesheet(t *testing.T) {
	t.Parallel()

	css, err := Stylesheet(nil)
	if err != nil {
		t.Fatalf("Stylesheet() error = %v", err)
	}
	for _, class := range []string{".plotlybars-wrapper", ".plotlybars-bar", ".plotlybars-text"} {
		if !strings.Contains(css, class) {
			t.Errorf("stylesheet missing %s", class)
		}
	}

	if _, err := Stylesheet(failingLoader{}); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("Stylesheet(failing) error = %v, want ErrStyleNotFound", err)
	}
}
