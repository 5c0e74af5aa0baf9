package main

import (
	"os"

	"TwseScreener/cmd/screener/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
