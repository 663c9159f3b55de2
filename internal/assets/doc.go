// Package assets provides the stylesheets and page templates of the site.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - go:embed styles and template sets
//	    ├── FilesystemLoader  - custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # site stylesheet (e.g., dark.css)
//	└── templates/
//	    └── {name}/
//	        ├── layout.html      # page shell: head, meta, stylesheet, footer
//	        ├── index.html       # {{define "content"}} for the card grid
//	        └── sheet.html       # {{define "content"}} for sidebar + body
//
// A custom directory may override a single style or a whole template set;
// anything it lacks falls back to the embedded defaults.
//
// # Security
//
// Asset names are validated against path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
