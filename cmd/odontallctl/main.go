package main

import (
	"os"

	"OdontAll/cmd/odontallctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
