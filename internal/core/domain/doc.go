// Package domain defines the core business entities for golos.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - ResolvedDate / ResolvedPeriod / ParseOutcome: date resolution results
//   - Airport: an entry in the airport directory
//   - ToolCall: the closed set of tool invocations the assistant can make
//   - Event / Note / Track: tool-layer entities
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
package domain
