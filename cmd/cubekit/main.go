package main

import (
	"github.com/joho/godotenv"

	"github.com/cubekit/cubekit/internal/cli"
)

func main() {
	// Optional .env for CUBEKIT_* settings; absence is not an error.
	_ = godotenv.Load()

	cli.Execute()
}
