// Command gridview shows a CSV, JSON, TOML or SQLite data set in a terminal
// data grid.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
