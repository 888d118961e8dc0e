// Command a2b runs A=B string-rewriting programs.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/a2b/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
