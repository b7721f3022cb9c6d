// Command debuganalyze runs the project's static analyzer against one
// source file and writes the captured output to analysis_debug.txt.
package main

import (
	"log"
	"os"

	"github.com/deixis/debuganalyze/cmd/debuganalyze/commands"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("debuganalyze: ")

	if err := commands.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
