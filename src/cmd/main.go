package main

import (
	"log"

	app "github.com/ruopp93-dot/INKCRAFTE/src/app"
	cfg "github.com/ruopp93-dot/INKCRAFTE/src/configuration"
	server "github.com/ruopp93-dot/INKCRAFTE/src/server"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	config := cfg.ReadProperties()
	if !config.UseRemote() {
		// One-time migration: pick up images left next to the binary.
		app.ImportRootImages(".", config.Store.UploadsDir)
	}
	server.RunServer(config)
}
