// Package main implements the grindboard server binary: the HTTP API plus
// operator commands for migrations, imports and position maintenance.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
