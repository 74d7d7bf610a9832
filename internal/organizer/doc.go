// Package organizer copies classified drone videos into the dated destination
// tree and reports every step through an ordered event stream.
//
// A run scans the source directory with package classify, logs skip reasons,
// then copies candidates one at a time into
// <dest>/<YYYY>/<Month>/<DD - Weekday>/<name>. Overall progress is tracked in
// bytes across the whole run and published as deduplicated percentages. A
// failure while copying one file is reported and the run moves on; only a
// failed scan aborts a run. Sources are never modified.
//
// Events are delivered synchronously on the run goroutine. Use Queue when the
// consumer lives on another goroutine.
package organizer
