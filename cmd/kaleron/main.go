package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrSnakeDoc/accountlink/internal/cli"
)

func main() {
	// Flags read their EnvVars at parse time, so .env must be loaded first.
	_ = godotenv.Load() // Ignore error if .env not found

	if err := cli.NewApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ kaleron: %v\n", err)
		os.Exit(1)
	}
}
