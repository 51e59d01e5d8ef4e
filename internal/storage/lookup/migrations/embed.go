package migrations

import "embed"

//go:generate go run ../../../../cmd/goconst -type Type -name eventType -format sql -out 001_event_types.gen.sql ../../../domain/event
//go:generate go run ../../../../cmd/goconst -type Role -name role -format sql -out 002_roles.gen.sql ../../../domain/access

// FS contains the generated lookup table scripts.
//
//go:embed *.sql
var FS embed.FS
