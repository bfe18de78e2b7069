package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"dayflow_backend/internals/configs"
	database "dayflow_backend/internals/databases"
	middlewares "dayflow_backend/internals/middlewares"
	routes "dayflow_backend/internals/route"
)

func main() {
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	// money fields are emitted as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            middlewares.ErrorHandler(cfg.IsDevelopment()),
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               1 << 20,
	})

	middlewares.SetupMiddlewares(app, cfg)

	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	routes.SetupRoutes(app, db, cfg)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s (%s)", cfg.Port, cfg.AppEnv)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close(db)
}
