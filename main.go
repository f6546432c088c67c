package main

import (
	"fmt"
	"os"
)

// execute runs the command tree; no arguments means serve.
func execute(args []string) error {
	if len(args) == 0 {
		args = []string{"serve"}
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
