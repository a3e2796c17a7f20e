package controllers

import (
	"net/http"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type FirmController struct {
	service services.FirmServiceInterface
	logger  *zap.Logger
}

func NewFirmController(service services.FirmServiceInterface, logger *zap.Logger) *FirmController {
	return &FirmController{service: service, logger: logger}
}

func (c *FirmController) GetFirms(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	firms, total, err := c.service.GetFirms(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, firms, "Firms fetched", http.StatusOK, total)
}

func (c *FirmController) FindFirm(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	firm, err := c.service.FindFirm(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, firm, "Firm fetched", http.StatusOK)
}

func (c *FirmController) CreateFirm(ctx echo.Context) error {
	var payload dto.CreateFirmDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	firm, err := c.service.CreateFirm(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, firm, "Firm created", http.StatusCreated)
}

func (c *FirmController) UpdateFirm(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateFirmDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	firm, err := c.service.UpdateFirm(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, firm, "Firm updated", http.StatusOK)
}

func (c *FirmController) DeleteFirm(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.DeleteFirm(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Firm deleted", http.StatusOK)
}
