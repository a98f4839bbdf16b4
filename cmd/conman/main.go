// Command conman manages personal configuration files: tracked files are
// mirrored into a git repository, synchronized with an upstream remote and
// reconciled against a local cache across branch switches.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
