package main

import (
	"log"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/sustainaByte/orghub/internal/config"
	"github.com/sustainaByte/orghub/internal/server"
)

func main() {
	envFiles := []string{".env.local", ".env.development", ".env"}
	config.LoadEnvFiles(envFiles)

	cfg, err := config.LoadFromFile("config.yaml")
	if err != nil {
		fiberlog.Fatalf("Failed to load config: %v", err)
	}

	srv := server.New(cfg)

	log.Println("Starting orghub server...")
	if err := srv.Run(); err != nil {
		fiberlog.Fatalf("Server failed: %v", err)
	}
}
