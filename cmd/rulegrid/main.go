package main

import (
	"os"

	"github.com/contentgrid/rulegrid/cmd/rulegrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
