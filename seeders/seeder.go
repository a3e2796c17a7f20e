// Package seeders bootstraps a fresh database with the records the board
// needs on day one: an admin login and the production-floor workshops.
package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func Run(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if err := seedAdmin(ctx, pool, logger); err != nil {
		return err
	}
	if err := seedWorkshops(ctx, pool, logger); err != nil {
		return err
	}
	return seedCostItems(ctx, pool, logger)
}

func seedAdmin(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	tag, err := pool.Exec(ctx,
		`INSERT INTO users (full_name, email, password_hash, role)
		 VALUES ('Admin', 'admin@atolye.local', $1, 'admin')
		 ON CONFLICT (email) DO NOTHING`, string(hash))
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if tag.RowsAffected() > 0 {
		logger.Info("admin user created", zap.String("email", "admin@atolye.local"))
	}
	return nil
}

func seedWorkshops(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	// "Biten İşler" is the terminal column: landing there completes an order.
	workshops := []struct {
		name     string
		location string
	}{
		{"Kesim Atölyesi", "Zemin Kat"},
		{"Dikim Atölyesi", "1. Kat"},
		{"Ütü ve Paket", "2. Kat"},
		{"Biten İşler", "Depo"},
	}

	for _, w := range workshops {
		if _, err := pool.Exec(ctx,
			`INSERT INTO workshops (name, location) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			w.name, w.location); err != nil {
			return fmt.Errorf("seed workshop %q: %w", w.name, err)
		}
	}
	logger.Info("workshops seeded", zap.Int("count", len(workshops)))
	return nil
}

func seedCostItems(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	items := []struct {
		name string
		unit string
	}{
		{"Kumaş", "metre"},
		{"İplik", "adet"},
		{"Fermuar", "adet"},
		{"Boya", "kg"},
		{"İşçilik", "saat"},
	}

	for _, it := range items {
		if _, err := pool.Exec(ctx,
			`INSERT INTO cost_items (name, unit) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			it.name, it.unit); err != nil {
			return fmt.Errorf("seed cost item %q: %w", it.name, err)
		}
	}
	logger.Info("cost items seeded", zap.Int("count", len(items)))
	return nil
}
