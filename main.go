package main

import (
	"fmt"
	"os"

	"github.com/temirov/helpsync/cmd/cli"
)

const (
	successExitCodeConstant     = 0
	failureExitCodeConstant     = 1
	errorOutputTemplateConstant = "%v\n"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps failures onto the process exit code.
func run() int {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, errorOutputTemplateConstant, executionError)
		return failureExitCodeConstant
	}
	return successExitCodeConstant
}
