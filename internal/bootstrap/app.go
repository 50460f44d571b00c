package bootstrap

import (
	"fmt"

	"github.com/ndkhanh/quizroom/internal/config"
	"github.com/ndkhanh/quizroom/internal/controller"
	"github.com/ndkhanh/quizroom/internal/parser"
	"github.com/ndkhanh/quizroom/pkg/realtime"
)

// App wires configuration, the realtime transport, the Session Controller,
// and the HTTP server into a single runnable process.
type App struct {
	config *config.Config
	server *Server
}

// NewApp loads configuration and wires every component. Unlike the teacher,
// there is no database or cache to connect: the entire system is in-memory
// (spec.md Non-goals).
func NewApp() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	hub := realtime.NewHub()
	controller.New(hub, parser.New(cfg.Session))

	router := SetupRouter(hub)
	server := NewServer(cfg, router)

	return &App{config: cfg, server: server}, nil
}

// Start runs the HTTP server until interrupted.
func (a *App) Start() {
	a.server.Start()
}
