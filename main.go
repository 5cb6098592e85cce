package main

import (
	"os"

	"github.com/carson-networks/club-budget-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
