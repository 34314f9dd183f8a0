package main

import (
	"os"

	"github.com/wonny/c360/cmd/c360/commands"
)

// main is the entry point for the Customer 360 CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/c360 [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
