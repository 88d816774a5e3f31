// Package debug is the generator's opt-in trace log.
//
// Set MVIEW_DEBUG to a file path, or pass -debug to the mview command, and
// each stage of an expansion appends a timestamped line to that file.
// With neither set every call returns immediately.
package debug
