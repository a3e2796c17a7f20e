package controllers

import (
	"net/http"
	"strconv"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorkshopController struct {
	service services.WorkshopServiceInterface
	logger  *zap.Logger
}

func NewWorkshopController(service services.WorkshopServiceInterface, logger *zap.Logger) *WorkshopController {
	return &WorkshopController{service: service, logger: logger}
}

func (c *WorkshopController) GetWorkshops(ctx echo.Context) error {
	onlyActive := true
	if v := ctx.QueryParam("include_inactive"); v != "" {
		if includeInactive, err := strconv.ParseBool(v); err == nil && includeInactive {
			onlyActive = false
		}
	}

	workshops, err := c.service.GetWorkshops(ctx.Request().Context(), onlyActive)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, workshops, "Workshops fetched", http.StatusOK)
}

func (c *WorkshopController) FindWorkshop(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	workshop, err := c.service.FindWorkshop(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, workshop, "Workshop fetched", http.StatusOK)
}

func (c *WorkshopController) CreateWorkshop(ctx echo.Context) error {
	var payload dto.CreateWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	workshop, err := c.service.CreateWorkshop(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, workshop, "Workshop created", http.StatusCreated)
}

func (c *WorkshopController) UpdateWorkshop(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateWorkshopDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	workshop, err := c.service.UpdateWorkshop(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, workshop, "Workshop updated", http.StatusOK)
}

func (c *WorkshopController) DeleteWorkshop(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.DeleteWorkshop(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Workshop deleted", http.StatusOK)
}
