// Package web carries the embedded single-page UI served at the root route.
package web

import "embed"

//go:embed static
var Static embed.FS
