package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"love-diary-backend/internal/config"
	"love-diary-backend/internal/handlers"
	"love-diary-backend/internal/middleware"
	"love-diary-backend/internal/repository"
	"love-diary-backend/internal/services"
	"love-diary-backend/internal/session"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	anniversaryRepo := repository.NewAnniversaryRepository(db)
	quarrelRepo := repository.NewQuarrelRepository(db)
	poopRepo := repository.NewPoopRepository(db)

	// Initialize session store
	sessions := session.NewStore(cfg.Session.DataDir)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWT.Secret)
	pairingService := services.NewPairingService(userRepo, requestRepo)
	fileService, err := services.NewFileService(cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create file service")
	}
	anniversaryService := services.NewAnniversaryService(anniversaryRepo, fileService)
	quarrelService := services.NewQuarrelService(quarrelRepo)
	poopService := services.NewPoopService(poopRepo)
	pushService, err := services.NewPushService(cfg.APNs)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create push service")
	}
	hub := services.NewHub()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, sessions, hub)
	pairingHandler := handlers.NewPairingHandler(pairingService, userService, sessions, hub, pushService)
	anniversaryHandler := handlers.NewAnniversaryHandler(anniversaryService, userService)
	quarrelHandler := handlers.NewQuarrelHandler(quarrelService, userService)
	poopHandler := handlers.NewPoopHandler(poopService, userService)
	fileHandler := handlers.NewFileHandler(fileService, userService)
	wsHandler := handlers.NewWebSocketHandler(hub, userService, pairingService, sessions)

	loginLimiter := middleware.NewRateLimiter(10, 5)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/users/register", userHandler.Register)
			r.Post("/users/login", userHandler.Login)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService, sessions))

			r.Post("/users/logout", userHandler.Logout)
			r.Get("/users/me", userHandler.Me)
			r.Put("/users/me", userHandler.UpdateProfile)
			r.Put("/users/me/push-token", userHandler.UpdatePushToken)

			r.Post("/partner-requests", pairingHandler.SendInvite)
			r.Get("/partner-requests", pairingHandler.ListInvites)
			r.Post("/partner-requests/{request_id}/accept", pairingHandler.AcceptInvite)
			r.Post("/partner-requests/{request_id}/reject", pairingHandler.RejectInvite)

			r.Get("/anniversaries", anniversaryHandler.List)
			r.Post("/anniversaries", anniversaryHandler.Create)
			r.Put("/anniversaries/{anniversary_id}", anniversaryHandler.Update)
			r.Delete("/anniversaries/{anniversary_id}", anniversaryHandler.Delete)

			r.Get("/quarrels", quarrelHandler.List)
			r.Post("/quarrels", quarrelHandler.Create)
			r.Post("/quarrels/{quarrel_id}/reconcile", quarrelHandler.Reconcile)
			r.Delete("/quarrels/{quarrel_id}", quarrelHandler.Delete)

			r.Get("/poop-records", poopHandler.List)
			r.Post("/poop-records", poopHandler.Create)
			r.Delete("/poop-records/{record_id}", poopHandler.Delete)

			r.Post("/files/temp-urls", fileHandler.TempURLs)
			r.Post("/files/upload", fileHandler.Upload)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
