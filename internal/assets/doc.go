// Package assets provides the static files a chart widget depends on: the
// loading-indicator stylesheet, the HTML templates used to render widget and
// page markup, and the descriptor of versioned files a page must reference.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver tries the custom FilesystemLoader first, falling back to
// EmbeddedLoader if the asset is not found. This enables overriding the
// stylesheet or a single template while keeping the other defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # e.g. plotly.css
//	└── templates/
//	    └── {name}.html          # loading.html, page.html
//
// # Versioning
//
// Descriptor entries never embed a version in their file name. The pinned
// library release travels in Asset.Version and is appended as a ?v= query
// by Asset.URL, for stylesheets and scripts alike.
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
