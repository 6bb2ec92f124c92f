package main

import (
	"fmt"
	"os"

	"github.com/jlleitschuh/hibernate-changelog-gen/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the changelog-gen command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
