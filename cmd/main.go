package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/adapter/postgres"
	"github.com/restodesk/backoffice/internal/adapter/rabbitmq"
	redisAdapter "github.com/restodesk/backoffice/internal/adapter/redis"
	"github.com/restodesk/backoffice/internal/adapter/ws"
	"github.com/restodesk/backoffice/internal/app/notify"
	"github.com/restodesk/backoffice/internal/app/orderreq"
	"github.com/restodesk/backoffice/internal/app/reason"
	"github.com/restodesk/backoffice/internal/config"

	httpAdapter "github.com/restodesk/backoffice/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "", "Service mode: api-service, notification-gateway")
	port := flag.Int("port", 3000, "HTTP port")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	if *mode == "" {
		log.Fatal("--mode flag is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env vars")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lgr := logger.New(*mode)
	defer lgr.Sync()

	switch *mode {
	case "api-service":
		runAPIService(ctx, cfg, lgr, *port)

	case "notification-gateway":
		runNotificationGateway(ctx, cfg, lgr, *port)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPIService(ctx context.Context, cfg *config.Config, lgr logger.Logger, port int) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	redisClient, err := redisAdapter.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	reasonRepo := postgres.NewReasonRepository(db)
	orderReqRepo := postgres.NewOrderRequestRepository(db)

	reasonCache := redisAdapter.NewReasonCache(redisClient, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second, lgr)
	publisher := rabbitmq.NewPublisher(mqConn)

	reasonService := reason.NewService(reasonRepo, reasonCache, lgr, cfg.Reasons.DefaultPageLimit)
	orderReqService := orderreq.NewService(orderReqRepo, reasonRepo, publisher, lgr)

	reasonHandler := httpAdapter.NewReasonHandler(reasonService, cfg.Reasons.DefaultPageLimit, lgr)
	orderReqHandler := httpAdapter.NewOrderRequestHandler(orderReqService, cfg.OrderRequests.DefaultListLimit, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/action-reasons", reasonHandler.HandleReasons)
	mux.HandleFunc("/action-reasons/", reasonHandler.HandleReasonByID)
	mux.HandleFunc("/order-requests", orderReqHandler.HandleOrderRequests)
	mux.HandleFunc("/order-requests/confirm", orderReqHandler.HandleConfirm)
	mux.HandleFunc("/order-requests/reject", orderReqHandler.HandleReject)
	mux.HandleFunc("/order-requests/waiting", orderReqHandler.HandleWaiting)

	handler := httpAdapter.AuthMiddleware([]byte(cfg.Auth.JWTSecret))(mux)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	serve(lgr, handler, port, "API Service")
}

func runNotificationGateway(ctx context.Context, cfg *config.Config, lgr logger.Logger, port int) {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	hub := ws.NewHub(lgr)
	notifyService := notify.NewService(hub, lgr)
	consumer := rabbitmq.NewConsumer(mqConn, lgr)

	go func() {
		if err := consumer.ConsumeNotifications(ctx, notifyService.HandleNotification); err != nil && ctx.Err() == nil {
			lgr.Error("consumer_error", "Error consuming notifications", nil, err)
		}
	}()

	wsHandler := ws.NewHandler(hub,
		time.Duration(cfg.Notifications.TrayTTLSeconds)*time.Second,
		cfg.Notifications.SendBuffer, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/notifications", wsHandler.HandleNotifications)

	handler := httpAdapter.AuthMiddleware([]byte(cfg.Auth.JWTSecret))(mux)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	serve(lgr, handler, port, "Notification Gateway")
}

func serve(lgr logger.Logger, handler http.Handler, port int, name string) {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("%s started on port %d", name, port), map[string]interface{}{
		"port": port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", fmt.Sprintf("Shutting down %s", name), nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", nil, err)
	}
}
