package main

import (
	"os"

	"github.com/ocpizza/feeder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
