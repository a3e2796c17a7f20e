package services

import (
	"context"
	"encoding/json"
	"time"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/entities"
	"atolye-takip/internal/repositories"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const rateCacheKey = "exchange_rates:latest"

type ExchangeRateServiceInterface interface {
	// Rates returns banknote-selling rates into the base currency, keyed by
	// currency code. The base currency itself is not in the map.
	Rates(ctx context.Context) (map[string]float64, error)
	GetRates(ctx context.Context) ([]dto.ExchangeRateDTO, error)
	SaveRates(ctx context.Context, rates []entities.ExchangeRate) error
}

type ExchangeRateService struct {
	repo     repositories.ExchangeRateRepositoryInterface
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewExchangeRateService(repo repositories.ExchangeRateRepositoryInterface, redisClient *redis.Client, cacheTTL time.Duration, logger *zap.Logger) ExchangeRateServiceInterface {
	return &ExchangeRateService{repo: repo, redis: redisClient, cacheTTL: cacheTTL, logger: logger}
}

func (s *ExchangeRateService) load(ctx context.Context) ([]entities.ExchangeRate, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, rateCacheKey).Bytes()
		if err == nil {
			var rates []entities.ExchangeRate
			if err := json.Unmarshal(cached, &rates); err == nil {
				return rates, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("rate cache read failed", zap.Error(err))
		}
	}

	rates, err := s.repo.GetLatestRates(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil && len(rates) > 0 {
		if payload, err := json.Marshal(rates); err == nil {
			if err := s.redis.Set(ctx, rateCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("rate cache write failed", zap.Error(err))
			}
		}
	}
	return rates, nil
}

func (s *ExchangeRateService) Rates(ctx context.Context) (map[string]float64, error) {
	rates, err := s.load(ctx)
	if err != nil {
		// Board totals degrade (missing rates contribute zero) rather than
		// blocking the whole board on a rate source outage.
		s.logger.Error("loading exchange rates failed", zap.Error(err))
		return map[string]float64{}, nil
	}

	out := make(map[string]float64, len(rates))
	for _, r := range rates {
		out[r.CurrencyCode] = r.BanknoteSelling
	}
	return out, nil
}

func (s *ExchangeRateService) GetRates(ctx context.Context) ([]dto.ExchangeRateDTO, error) {
	rates, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExchangeRateDTO, 0, len(rates))
	for _, r := range rates {
		out = append(out, dto.ExchangeRateDTO{
			CurrencyCode:    r.CurrencyCode,
			BanknoteSelling: r.BanknoteSelling,
			FetchedAt:       r.FetchedAt.Local().Format("2006-01-02 15:04:05"),
		})
	}
	return out, nil
}

func (s *ExchangeRateService) SaveRates(ctx context.Context, rates []entities.ExchangeRate) error {
	if err := s.repo.SaveRates(ctx, rates); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, rateCacheKey).Err(); err != nil {
			s.logger.Warn("rate cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
