package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/stmtfmt/stmtfmt/internal/commands"
)

func main() {
	// A local .env may set STMTFMT_CONFIG; it is optional.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
