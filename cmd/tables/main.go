package main

import (
	"os"

	"oficina_quotes/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	log := logger.New()
	if err := newRootCommand(log).Execute(); err != nil {
		log.WithError(err).Error("tables command failed")
		os.Exit(1)
	}
}
