package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guerrinflorian/lexiflood-backend/internal/config"
	"github.com/guerrinflorian/lexiflood-backend/internal/database"
	"github.com/guerrinflorian/lexiflood-backend/internal/dictionary"
	"github.com/guerrinflorian/lexiflood-backend/internal/game"
	"github.com/guerrinflorian/lexiflood-backend/internal/server"
	"github.com/guerrinflorian/lexiflood-backend/internal/websocket"
)

func setupLogger(cfg config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(cfg.LogLevel)
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
}

func loadDictionary(path string) (*dictionary.Dictionary, error) {
	if path == "" {
		log.Warn().Msg("DICTIONARY_PATH not set, using the small built-in word list")
		return dictionary.Default(), nil
	}
	return dictionary.LoadFile(path)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	words, err := loadDictionary(cfg.DictionaryPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DictionaryPath).Msg("failed to load dictionary")
	}
	log.Info().Int("words", words.Size()).Msg("dictionary loaded")

	gateway := websocket.NewGateway(cfg.AllowedOrigins)
	hubOpts := []game.Option{game.WithRules(cfg.Rules)}
	serverOpts := []server.Option{server.WithAllowedOrigins(cfg.AllowedOrigins)}

	if cfg.DatabaseURL != "" {
		db, err := database.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error().Err(err).Msg("database unavailable, game results will not be saved")
		} else {
			defer db.Close()
			hubOpts = append(hubOpts, game.WithResultStore(db))
			serverOpts = append(serverOpts, server.WithResults(db))
			log.Info().Msg("game results stored in postgres")
		}
	}

	hub := game.NewHub(gateway, words, hubOpts...)
	hubDone := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(hubDone)
	}()

	srv := server.New(cfg.Port, gateway, hub, words, serverOpts...).HTTPServer()
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", srv.Addr).Msg("failed to bind listener")
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("LexiFlood server listening")
		serveErr <- srv.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	<-hubDone

	log.Info().Msg("server exiting")
}
