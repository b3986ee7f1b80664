// Package chemclass embeds the frontend for production builds.
package chemclass

import "embed"

// In dev mode the router reads frontend/ from the working tree instead, so
// template and stylesheet edits show up without a rebuild.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
