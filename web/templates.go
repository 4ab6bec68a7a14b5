// Package web embeds the admin panel templates.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS
