package main

import (
	"context"

	"atolye-takip/migrations"
	"atolye-takip/pkg/config"
	"atolye-takip/pkg/database/postgresql"
	"atolye-takip/pkg/logger"
	"atolye-takip/seeders"

	"go.uber.org/zap"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()

	if err := migrations.Run(cfg.Postgres.DSN); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	if err := seeders.Run(context.Background(), pool, log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	log.Info("seeding complete")
}
