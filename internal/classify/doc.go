// Package classify decides which entries of a source directory are DJI drone
// videos eligible for organizing.
//
// Classify enumerates the direct entries of a directory, applies the naming
// filter chain, parses the recording date embedded in each eligible name, and
// stats the file size. Every entry ends up either as a Candidate or as a
// human-readable skip reason; nothing is written to disk.
package classify
