// Package main hosts the Lectern CLI entrypoint and command graph.
//
// Each command reads its input from arguments or stdin, runs one or more
// internal stages, and writes a single JSON document to stdout. Failures are
// reported as a JSON object with an "error" key and a non-zero exit status;
// logs go to stderr so stdout stays machine-readable.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
