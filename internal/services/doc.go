// Package services defines shared utilities consumed by the pipeline stages
// and the remote integrations behind them.
//
// Key responsibilities:
//   - Context helpers that stamp stage names, request identifiers, and the
//     source reference for logging and tracing.
//   - A closed set of error markers plus the Wrap helper, so callers can
//     dispatch on the failure kind with errors.Is or KindOf instead of
//     matching message text.
//
// Use these helpers when wiring new stage logic so failures surface with the
// same shape regardless of which collaborator produced them.
package services
