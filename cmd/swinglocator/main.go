// Command swinglocator is a debug CLI for the locator pipeline: it parses a
// locator, prints its canonical form or AST, or connects to a running agent to dump
// its widget tree.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/swinglibrary-go/cmd/swinglocator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
