// Package ui renders command capture progress as human-readable console
// messages. Structured telemetry stays on the zap logger; these helpers serve
// runs configured with the console log format.
package ui
