// Command myrecipes manages a personal recipe collection stored in a local
// SQLite database.
package main

import (
	"os"

	"github.com/roach88/myrecipes/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
