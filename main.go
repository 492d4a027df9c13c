package main

import (
	"os"

	"github.com/rmarin/examdrill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
