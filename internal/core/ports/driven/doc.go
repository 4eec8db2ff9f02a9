// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the station catalog, snapshot and tool-data
// persistence, the music catalog and the LLM provider.
//
// Services depend on these interfaces; adapters under
// internal/adapters/driven implement them.
package driven
