// Command cmsgen generates TypeScript declarations from content-type
// schema exports.
package main

import (
	"os"

	"github.com/syssam/cmsgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
