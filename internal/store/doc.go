// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing the task and tag rules to remain
// independent of the SQL dialect in use.
//
// Every lookup of a task or tag is scoped to its owner. An entity owned by a
// different user is reported exactly like a missing one.
package store
