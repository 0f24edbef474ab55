// Command hackerfeed is a terminal Hacker News reader.
package main

import (
	"os"

	"github.com/thomaskoefod/hackerfeed/internal/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
