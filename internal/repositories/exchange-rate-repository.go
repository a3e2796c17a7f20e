package repositories

import (
	"context"
	"time"

	"atolye-takip/internal/entities"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExchangeRateRepositoryInterface interface {
	GetLatestRates(ctx context.Context) ([]entities.ExchangeRate, error)
	SaveRates(ctx context.Context, rates []entities.ExchangeRate) error
}

type exchangeRateRepository struct{ storage *pgxpool.Pool }

func NewExchangeRateRepository(storage *pgxpool.Pool) ExchangeRateRepositoryInterface {
	return &exchangeRateRepository{storage: storage}
}

// GetLatestRates returns the most recently fetched rate per currency.
func (r *exchangeRateRepository) GetLatestRates(ctx context.Context) ([]entities.ExchangeRate, error) {
	query := `SELECT DISTINCT ON (currency_code) id, currency_code, banknote_selling, fetched_at
		FROM exchange_rates ORDER BY currency_code, fetched_at DESC`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make([]entities.ExchangeRate, 0)
	for rows.Next() {
		var rate entities.ExchangeRate
		if err := rows.Scan(&rate.ID, &rate.CurrencyCode, &rate.BanknoteSelling, &rate.FetchedAt); err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, rows.Err()
}

func (r *exchangeRateRepository) SaveRates(ctx context.Context, rates []entities.ExchangeRate) error {
	now := time.Now()
	for _, rate := range rates {
		fetchedAt := rate.FetchedAt
		if fetchedAt.IsZero() {
			fetchedAt = now
		}
		if _, err := r.storage.Exec(ctx,
			"INSERT INTO exchange_rates (currency_code, banknote_selling, fetched_at) VALUES($1, $2, $3)",
			rate.CurrencyCode, rate.BanknoteSelling, fetchedAt); err != nil {
			return err
		}
	}
	return nil
}
