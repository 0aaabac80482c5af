// Package main provides the golibman CLI: a library-lending manager over
// two SQLite-backed record stores (books and users) driven by per-store
// command workers.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
