// Package migrations provides the embedded schema files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
