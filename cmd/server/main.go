package main

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
	"gropower-backend/internal/config"
	"gropower-backend/internal/db"
	"gropower-backend/internal/handler"
	"gropower-backend/internal/repository"
	"gropower-backend/internal/server"
	"gropower-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	// Firebase Auth (optional)
	var firebaseAuth *auth.Client
	if cfg.FirebaseProjectID != "" {
		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, firebaseOptions(cfg)...)
		if err != nil {
			logger.Error("failed to init firebase app", "err", err)
			os.Exit(1)
		}
		client, err := app.Auth(ctx)
		if err != nil {
			logger.Error("failed to init firebase auth", "err", err)
			os.Exit(1)
		}
		firebaseAuth = client
	}

	// repositories
	userRepo := repository.UserRepository{DB: pg}
	productRepo := repository.ProductRepository{DB: pg}
	orderRepo := repository.OrderRepository{DB: pg}
	taskRepo := repository.TaskRepository{DB: pg}
	messageRepo := repository.MessageRepository{DB: pg}
	postRepo := repository.PostRepository{DB: pg}
	statsRepo := repository.StatsRepository{DB: pg}

	// services
	authSvc := service.AuthService{Config: cfg, Users: userRepo, Logger: logger, FirebaseAuth: firebaseAuth}

	// handlers
	handlers := server.Handlers{
		Health:       handler.HealthHandler{DB: pg},
		Auth:         handler.AuthHandler{Service: &authSvc},
		Profile:      handler.ProfileHandler{Repo: userRepo},
		Products:     handler.ProductHandler{Repo: productRepo, Currency: cfg.DefaultCurrency},
		ProductAdmin: handler.ProductAdminHandler{Repo: productRepo, Currency: cfg.DefaultCurrency},
		Orders: handler.OrderHandler{
			Ledger:   handler.OrderLedger{Repo: orderRepo},
			Catalog:  productRepo,
			MyOrders: orderRepo,
		},
		OrderAdmin: handler.OrderAdminHandler{Repo: orderRepo},
		UserAdmin:  handler.UserAdminHandler{Repo: userRepo},
		Tasks:      handler.TaskHandler{Repo: taskRepo, Users: userRepo},
		Messages:   handler.MessageHandler{Repo: messageRepo},
		Dashboard:  handler.DashboardHandler{Repo: statsRepo},
		Posts:      handler.PostHandler{Repo: postRepo},
		Payment:    handler.PaymentHandler{Config: cfg},
		Uploads:    handler.UploadHandler{Dir: cfg.UploadDir},
	}

	router := server.NewRouter(cfg, logger, userRepo, handlers)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}

func firebaseOptions(cfg config.Config) []option.ClientOption {
	if cfg.FirebaseCredFile == "" {
		return nil
	}

	cred := cfg.FirebaseCredFile
	// Allow inline JSON or base64-encoded JSON in env to avoid writing a file.
	if strings.HasPrefix(strings.TrimSpace(cred), "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(cred))}
	}
	if decoded, err := base64.StdEncoding.DecodeString(cred); err == nil && strings.HasPrefix(strings.TrimSpace(string(decoded)), "{") {
		return []option.ClientOption{option.WithCredentialsJSON(decoded)}
	}

	return []option.ClientOption{option.WithCredentialsFile(cred)}
}
