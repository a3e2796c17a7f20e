package controllers

import (
	"net/http"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CostItemController struct {
	service         services.CostItemServiceInterface
	workshopService services.WorkshopCostItemServiceInterface
	logger          *zap.Logger
}

func NewCostItemController(service services.CostItemServiceInterface,
	workshopService services.WorkshopCostItemServiceInterface, logger *zap.Logger) *CostItemController {
	return &CostItemController{service: service, workshopService: workshopService, logger: logger}
}

func (c *CostItemController) GetCostItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	items, total, err := c.service.GetCostItems(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Cost items fetched", http.StatusOK, total)
}

func (c *CostItemController) FindCostItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item, err := c.service.FindCostItem(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Cost item fetched", http.StatusOK)
}

func (c *CostItemController) CreateCostItem(ctx echo.Context) error {
	var payload dto.CreateCostItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.service.CreateCostItem(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Cost item created", http.StatusCreated)
}

func (c *CostItemController) UpdateCostItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateCostItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.service.UpdateCostItem(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Cost item updated", http.StatusOK)
}

func (c *CostItemController) DeleteCostItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.service.DeleteCostItem(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Cost item deleted", http.StatusOK)
}

func (c *CostItemController) GetWorkshopCostItems(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	workshopID := parseOptionalQueryID(ctx, "workshop_id")

	items, total, err := c.workshopService.GetWorkshopCostItems(ctx.Request().Context(), workshopID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, items, "Workshop cost items fetched", http.StatusOK, total)
}

func (c *CostItemController) FindWorkshopCostItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	item, err := c.workshopService.FindWorkshopCostItem(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Workshop cost item fetched", http.StatusOK)
}

func (c *CostItemController) CreateWorkshopCostItem(ctx echo.Context) error {
	var payload dto.CreateWorkshopCostItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.workshopService.CreateWorkshopCostItem(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Workshop cost item created", http.StatusCreated)
}

func (c *CostItemController) UpdateWorkshopCostItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateWorkshopCostItemDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	item, err := c.workshopService.UpdateWorkshopCostItem(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, item, "Workshop cost item updated", http.StatusOK)
}

func (c *CostItemController) DeleteWorkshopCostItem(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.workshopService.DeleteWorkshopCostItem(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Workshop cost item deleted", http.StatusOK)
}
