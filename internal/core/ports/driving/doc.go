// Package driving provides interfaces for use-case entry points
// (primary/inbound ports) consumed by the CLI adapter: date resolution,
// airport lookup, the tool services and the dispatcher.
package driving
