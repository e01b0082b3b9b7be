package main

import (
	"os"

	"github.com/rustyeddy/apollo/cmd/apollo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
