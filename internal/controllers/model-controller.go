package controllers

import (
	"net/http"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	apperrors "atolye-takip/pkg/errors"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ModelController struct {
	service services.ModelServiceInterface
	logger  *zap.Logger
}

func NewModelController(service services.ModelServiceInterface, logger *zap.Logger) *ModelController {
	return &ModelController{service: service, logger: logger}
}

func (c *ModelController) GetModels(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	firmID := parseOptionalQueryID(ctx, "firm_id")

	models, total, err := c.service.GetModels(ctx.Request().Context(), filter, firmID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, models, "Models fetched", http.StatusOK, total)
}

func (c *ModelController) FindModel(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	model, err := c.service.FindModel(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Model fetched", http.StatusOK)
}

func (c *ModelController) CreateModel(ctx echo.Context) error {
	var payload dto.CreateModelDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	model, err := c.service.CreateModel(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Model created", http.StatusCreated)
}

func (c *ModelController) UpdateModel(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateModelDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	model, err := c.service.UpdateModel(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Model updated", http.StatusOK)
}

func (c *ModelController) UploadModelImage(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewInvalidInputError("image file is required"), c.logger)
	}

	model, err := c.service.UploadModelImage(ctx.Request().Context(), id, file)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, model, "Image uploaded", http.StatusOK)
}

func (c *ModelController) DeleteModel(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.DeleteModel(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Model deleted", http.StatusOK)
}
