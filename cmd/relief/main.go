package main

import (
	"os"

	"student-relief/cmd/relief/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
