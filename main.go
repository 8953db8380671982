package main

import (
	"os"

	"github.com/abhisek/transform90/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
