package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/solmera/authkit"
)

func main() {
	cfg := authkit.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if err := authkit.CreateSchema(ctx, db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid redis url: %v", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to reach redis: %v", err)
	}

	reg := prometheus.NewRegistry()
	metrics := authkit.NewMetrics(reg)

	users := authkit.NewBunUserStore(db, nil)
	tokens := authkit.NewTokenService(cfg, nil)
	blacklist := authkit.NewTokenBlacklist(rdb, nil)
	mailer := authkit.NewLogMailer(nil)

	service := authkit.NewAuthService(users, tokens, blacklist, mailer).
		WithMetrics(metrics)

	guard := authkit.NewGuard(tokens, users, nil)
	cookie := authkit.NewRefreshCookie(cfg)
	controller := authkit.NewAuthController(service, cookie, nil)

	app := fiber.New(fiber.Config{
		AppName: "authd",
	})
	controller.RegisterRoutes(app, guard)

	go serveMetrics(reg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	if cfg.Testing {
		addr = fmt.Sprintf("127.0.0.1:%d", cfg.Port)
	}

	log.Fatal(app.Listen(addr))
}

func serveMetrics(reg *prometheus.Registry) {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		addr = "127.0.0.1:9091"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("metrics server stopped: %v", err)
	}
}
