//go:build cgo

package store

// Register the libsql driver. go-libsql is cgo-only, so registration is
// gated the same way as the cgo-only store tests.
import _ "github.com/tursodatabase/go-libsql"
