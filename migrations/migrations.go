// Package migrations contiene el esquema SQL embebido en el binario.
package migrations

import "embed"

// FS archivos NNNN_*.sql, aplicados en orden de nombre.
//
//go:embed *.sql
var FS embed.FS
