package main

import (
	"os"

	"github.com/e11jah/ntree/cmd/ntree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
