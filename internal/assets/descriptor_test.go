package assets

import (
	"reflect"
	"strings"
	"testing"
)

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
			name:       "explicit bases",
			styleBase:  "/static/plotly",
			scriptBase: "https://cdn.example.com/plotly",
			wantStyle:  "/static/plotly/css/plotly.css",
			wantScript: "https://cdn.example.com/plotly/js/plotly.min.js",
		},
		{
			name:       "trailing slashes trimmed",
			styleBase:  "/static/",
			scriptBase: "/vendor//",
			wantStyle:  "/static/css/plotly.css",
			wantScript: "/vendor/js/plotly.min.js",
		},
		{
			name:       "empty bases use default",
			wantStyle:  DefaultAssetBase + "/css/plotly.css",
			wantScript: DefaultAssetBase + "/js/plotly.min.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Describe(tt.styleBase, tt.scriptBase)
			want := []Asset{
				{Path: tt.wantStyle, Version: LibraryVersion},
				{Path: tt.wantScript, Version: LibraryVersion},
			}
			if got := d.Assets(); !reflect.DeepEqual(got, want) {
				t.Errorf("Describe(%q, %q).Assets() = %v, want %v", tt.styleBase, tt.scriptBase, got, want)
			}
		})
	}
}

func TestDescribe_Deterministic(t *testing.T) {
	t.Parallel()

	first := Describe("/a", "/b")
	for i := 0; i < 10; i++ {
		if got := Describe("/a", "/b"); !reflect.DeepEqual(got, first) {
			t.Fatalf("Describe() call %d = %v, want %v", i, got, first)
		}
	}
}

func TestDescribe_NoVersionInFileNames(t *testing.T) {
	t.Parallel()

	for _, a := range Describe("", "").Assets() {
		if strings.Contains(a.Path, LibraryVersion) {
			t.Errorf("asset path %q embeds the version", a.Path)
		}
	}
}

func TestAsset_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		asset Asset
		want  string
	}{
		{name: "versioned", asset: Asset{Path: "/a/plotly.css", Version: "1.29.3"}, want: "/a/plotly.css?v=1.29.3"},
		{name: "unversioned", asset: Asset{Path: "/a/plotly.css"}, want: "/a/plotly.css"},
		{name: "existing query", asset: Asset{Path: "/a/plotly.js?x=1", Version: "2"}, want: "/a/plotly.js?x=1&v=2"},
		{name: "version escaped", asset: Asset{Path: "/p.js", Version: "1 rc&x"}, want: "/p.js?v=1+rc%26x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.asset.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}
