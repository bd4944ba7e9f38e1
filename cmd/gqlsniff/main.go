/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Entry point for gqlsniff. Builds the command tree and reports any command
error before exiting.
*/

package main

import (
	"fmt"
	"os"

	"github.com/kleascm/gqlsniff/cmd/gqlsniff/commands"
)

func main() {
	// Execute root command
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
