// Package webui embeds the browser UI so the server binary is
// self-contained regardless of working directory or installation
// location.
package webui

import "embed"

// FS holds the static UI assets served at the site root.
//
//go:embed index.html app.js styles.css
var FS embed.FS
