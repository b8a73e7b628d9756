// Command yamlcore is a small CLI front end over pkg/yaml: it validates,
// formats, and dumps the event stream of YAML documents from the command
// line, for manual inspection and scripting.
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
