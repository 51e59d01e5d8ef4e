// Package event defines the closed vocabulary of event types published to
// project members.
//
// The constants below are the single source of truth: `go generate` renders
// them into web/data/eventType.gen.ts so the web client shares the exact
// token list, and the registry in this package validates inbound values.
package event
