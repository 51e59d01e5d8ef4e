// Package goconst renders Go string constants of a named type into closed
// literal unions for other languages.
//
// A run loads packages with golang.org/x/tools/go/packages, collects every
// constant whose type is one of the requested names together with its doc
// comment, and executes one of the embedded templates:
//
//   - ts: an `as const` array and the derived TypeScript union type
//   - md: a Markdown catalog table
//   - sql: a SQLite lookup table, dropped and recreated on apply, whose CHECK
//     constraint admits only the tokens
//
// Typical use is a go:generate directive next to the type:
//
//	//go:generate go run ./cmd/goconst -type Role -out web/data/role.gen.ts
package goconst
