// awkish - awk-style line processing without the awk language.
//
// The driver is thin glue over the awkish library: flags and YAML rule
// scripts build an engine, which is then run over the file arguments.
package main

import (
	"fmt"
	"os"

	"github.com/kolkov/awkish/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "awkish:", err)
		os.Exit(1)
	}
}
