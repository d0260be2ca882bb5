package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/manusiele/therapyflow-sub000/logger"
	"github.com/manusiele/therapyflow-sub000/src/cache"
	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/db"
	"github.com/manusiele/therapyflow-sub000/src/jobs"
	"github.com/manusiele/therapyflow-sub000/src/rabbitmq"
	"github.com/manusiele/therapyflow-sub000/src/repository"
	"github.com/manusiele/therapyflow-sub000/src/router"
	"github.com/manusiele/therapyflow-sub000/src/service"

	"github.com/redis/go-redis/v9"
)

// Server represents the HTTP server
type Server struct {
	config          *config.GlobalConfig
	database        *db.DB
	publisher       *rabbitmq.AMQPPublisher
	redisClient     *redis.Client
	http            *http.Server
	reaperCancel    context.CancelFunc
	shutdownHandler ShutdownHandlerInterface
}

// NewServer creates a new server instance
func NewServer(cfg *config.GlobalConfig) (*Server, error) {
	// Initialize database connection
	database, err := db.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Presence events are fire-and-forget; the service stays up without the
	// broker and clients fall back to polling the gate.
	publisher, err := rabbitmq.NewAMQPPublisher(cfg.GetAMQPURL())
	if err != nil {
		slog.Warn("RabbitMQ unavailable, presence events disabled", "error", err)
		publisher = nil
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		slog.Warn("Redis unavailable, session cache disabled", "error", err)
		redisClient.Close()
		redisClient = nil
	}

	server := &Server{
		config:      cfg,
		database:    database,
		publisher:   publisher,
		redisClient: redisClient,
	}

	// Create and assign shutdown handler
	server.shutdownHandler = NewShutdownHandler(server)

	return server, nil
}

// Run starts the server with graceful shutdown using ShutdownHandler
func (s *Server) Run() error {
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	serverDone := s.startServerGoroutine()

	return s.shutdownHandler.HandleShutdown(serverDone, osSignals)
}

// startServerGoroutine starts the HTTP server in a goroutine and returns a channel for errors
func (s *Server) startServerGoroutine() chan error {
	serverDone := make(chan error, 1)

	go func() {
		svc := s.buildServices()

		r := router.NewRouter(s.config, svc, logger.Logger)
		// Create HTTP server
		httpServer := &http.Server{
			Addr:    fmt.Sprintf("%s:%s", s.config.GetHost(), s.config.GetPort()),
			Handler: r,
		}
		s.http = httpServer

		reaperCtx, cancel := context.WithCancel(context.Background())
		s.reaperCancel = cancel
		jobs.StartPresenceReaper(reaperCtx, s.config, repository.NewPresenceRepository(s.database))

		slog.Info("Starting session service",
			"host", s.config.GetHost(),
			"port", s.config.GetPort())

		serverDone <- s.startServer()
	}()

	return serverDone
}

// buildServices wires repositories, cache and providers into the service layer
func (s *Server) buildServices() *service.Service {
	sessionRepo := repository.NewSessionRepository(s.database)
	presenceRepo := repository.NewPresenceRepository(s.database)

	var sessionCache service.SessionCache
	if s.redisClient != nil {
		c, err := cache.NewSessionCache(&cache.Config{RedisClient: s.redisClient})
		if err != nil {
			slog.Warn("Failed to create session cache", "error", err)
		} else {
			sessionCache = c
		}
	}

	sessions := service.NewSessionService(sessionRepo, sessionCache)

	var publisher rabbitmq.Publisher
	if s.publisher != nil {
		publisher = s.publisher
	}
	presence := service.NewPresenceService(presenceRepo, sessions, publisher)

	rooms := service.NewRoomServiceFromConfig(s.config)
	sms := service.NewSMSServiceFromConfig(s.config)

	return service.NewService(sessions, presence, rooms, sms)
}

// startServer starts the HTTP server and handles errors
func (s *Server) startServer() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
