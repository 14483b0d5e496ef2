// Package migrations contains the embedded auth shim migrations that give a
// plain Postgres database the Supabase auth schema and request roles.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
