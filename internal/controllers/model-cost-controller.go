package controllers

import (
	"net/http"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ModelCostController struct {
	service services.ModelCostServiceInterface
	logger  *zap.Logger
}

func NewModelCostController(service services.ModelCostServiceInterface, logger *zap.Logger) *ModelCostController {
	return &ModelCostController{service: service, logger: logger}
}

func (c *ModelCostController) CreateModelCost(ctx echo.Context) error {
	var payload dto.CreateModelCostDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.service.CreateModelCost(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, record, "Cost record created", http.StatusCreated)
}
