package main

import (
	"net/http"
	"os"

	"github.com/rmartell/go-site-sync/internal/devserver"
	"github.com/rmartell/go-site-sync/internal/logger"
)

func main() {
	log := logger.NewLogger("site-sync-devserver")

	addr := os.Getenv("DEVSERVER_ADDRESS")
	if addr == "" {
		addr = "localhost:8080"
	}

	srv := devserver.New(log)
	log.Info().Str("address", addr).Msg("devserver listening")
	if err := http.ListenAndServe(addr, srv.Router()); err != nil {
		log.Fatal().Err(err).Msg("devserver stopped")
	}
}
