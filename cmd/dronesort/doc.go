// Package main hosts the dronesort CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the structured
// logger and history ledger, and hands organize requests to the organizer.
// Events coming back from a run are rendered as a progress bar on terminals,
// as plain lines when piped, or as JSON lines with --json.
//
// Keep this package thin: behaviour belongs in the internal packages and is
// only surfaced here.
package main
