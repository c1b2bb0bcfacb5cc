package main

import (
	"context"
	"log"
	"os"

	"gamehub/backend/internal/bootstrap"
	"gamehub/backend/internal/config"
	"gamehub/backend/internal/server"
	"gamehub/backend/pkg/database"
	"gamehub/backend/pkg/mailer"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedGenres(db); err != nil {
		log.Fatalf("failed to seed genres: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Printf("redis unreachable, caching and rate limiting disabled: %v", err)
			redisClient = nil
		}
	} else {
		log.Println("REDIS_URL not set, caching and rate limiting disabled")
	}

	var mail mailer.Mailer
	if os.Getenv("SMTP_HOST") != "" {
		mail = mailer.NewSMTPMailer()
	} else {
		mail = mailer.NewLogMailer()
	}

	srv := server.NewServer(cfg, db, redisClient, mail)

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(context.Background(), db, srv.AuthService); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
