// Command lj is the LJ scripting language interpreter.
package main

import (
	"fmt"
	"os"

	"github.com/0cch/LJ/cmd/lj/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
