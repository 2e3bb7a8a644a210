// Package logging builds the slog loggers used by lectern commands and the
// pipeline.
//
// Two output formats are supported: a single-line console format for people
// and slog's JSON handler with compact keys for machines. Context helpers copy
// the stage, request ID and source reference onto every line.
//
// Output goes to stderr by default because stdout carries command results.
package logging
