package main

import (
	"os"

	"github.com/Neruzzz/utility-helper/cmd/utility-helper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
