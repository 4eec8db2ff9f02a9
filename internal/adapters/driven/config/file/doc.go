// Package file implements the configuration port over a TOML file in the
// user's golos directory. Nested tables are flattened to dot-notation keys
// ("rasp.api_key") so callers address settings uniformly.
package file
