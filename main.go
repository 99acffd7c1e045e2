package main

import (
	"github.com/jeeftor/wordgrid/cmd"
	"github.com/jeeftor/wordgrid/internal/utils"
)

func main() {
	// Execute the root command; the error carries its exit code
	if err := cmd.Execute(); err != nil {
		utils.FatalError(err, "wordgrid")
	}
}
