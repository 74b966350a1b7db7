package main

import (
	"fmt"
	"log"
	"os"

	"gobenford/internal/config"
	"gobenford/ui"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	app := ui.NewApp(cfg)
	log.Printf("serving analysis artifacts from %s on :%s", cfg.Output.Dir, cfg.Server.Port)
	if err := app.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "server error:", err)
		os.Exit(1)
	}
}
