// Package ciutil detects CI environments and resolves the environment
// variables the test suites read, such as the PostgreSQL test database URL.
package ciutil
