// Command gcsctl is a thin demonstration driver for the gcs solver: it
// builds one of a small set of built-in scenarios, solves it, and prints the
// result in the FlatZinc driver's conventional format. It stands in for a
// full FlatZinc/XCSP3 front-end, which is out of scope for this repository.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
