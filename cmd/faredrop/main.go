// Package main is the entry point for the faredrop service.
package main

import (
	"os"

	"github.com/venkatadeepikapotu/faredrop-tracker/cmd/faredrop/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
