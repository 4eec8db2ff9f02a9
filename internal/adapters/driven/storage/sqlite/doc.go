// Package sqlite provides SQLite-backed implementations of the persistence
// ports. A single database file holds calendar events and notes; schema
// changes ship as embedded migrations applied on open.
package sqlite
