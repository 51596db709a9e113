package main

import (
	"fmt"
	"os"

	"github.com/virtualboard/vaultsite/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return cmd.ExitCode(err)
	}
	return 0
}
