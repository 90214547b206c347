package main

import (
	"os"

	"github.com/potato4751/teaching-ai-validator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
