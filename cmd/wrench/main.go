package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/wrenchworks/wrench-cli/internal/adapters/driving/cli"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// A local .env may carry GEMINI_API_KEY; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
