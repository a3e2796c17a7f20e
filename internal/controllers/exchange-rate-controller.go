package controllers

import (
	"net/http"

	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ExchangeRateController struct {
	service services.ExchangeRateServiceInterface
	logger  *zap.Logger
}

func NewExchangeRateController(service services.ExchangeRateServiceInterface, logger *zap.Logger) *ExchangeRateController {
	return &ExchangeRateController{service: service, logger: logger}
}

func (c *ExchangeRateController) GetRates(ctx echo.Context) error {
	rates, err := c.service.GetRates(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rates, "Exchange rates fetched", http.StatusOK)
}
