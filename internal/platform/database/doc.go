// Package database opens the configured SQL backend and applies its schema
// migrations with goose.
package database
