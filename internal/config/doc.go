// Package config loads, normalizes, and validates Lectern configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as OPENROUTER_API_KEY.
// Stage sections ([summary], [quiz]) inherit connection settings from [llm]
// so a single key is enough for the common case.
//
// Always obtain settings through this package so downstream code receives
// trimmed values, canonical log formats, and clear validation errors.
package config
