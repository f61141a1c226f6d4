package main

import (
	"log"

	"github.com/MrSnakeDoc/accountlink/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ kaleron-sandbox failed to start: %v", err)
	}
}
