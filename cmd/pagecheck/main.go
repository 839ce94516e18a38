// Package main is the entry point for the pagecheck CLI.
package main

import (
	"os"

	"github.com/shelbytessier/nativepath-promotions-sub001/cmd/pagecheck/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
