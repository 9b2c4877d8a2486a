// Command hjconf loads layered configuration files and answers typed queries about them.
package main

import (
	"fmt"
	"os"

	"github.com/0xalexb/hjarta-config/cmd/hjconf/commands"
)

func main() {
	err := commands.NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
