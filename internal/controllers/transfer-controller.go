package controllers

import (
	"net/http"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TransferController struct {
	service services.TransferServiceInterface
	logger  *zap.Logger
}

func NewTransferController(service services.TransferServiceInterface, logger *zap.Logger) *TransferController {
	return &TransferController{service: service, logger: logger}
}

func (c *TransferController) Open(ctx echo.Context) error {
	var payload dto.OpenTransferDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session, err := c.service.Open(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Transfer opened", http.StatusCreated)
}

func (c *TransferController) Get(ctx echo.Context) error {
	session, err := c.service.Get(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Transfer fetched", http.StatusOK)
}

func (c *TransferController) SelectUser(ctx echo.Context) error {
	var payload dto.SelectTransferUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session, err := c.service.SelectUser(ctx.Request().Context(), ctx.Param("id"), payload.UserID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Operator selected", http.StatusOK)
}

// Next advances to cost entry, or finalizes immediately for orders coming
// from the unassigned column.
func (c *TransferController) Next(ctx echo.Context) error {
	session, result, err := c.service.Next(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if result != nil {
		return utils.SuccessResponse(ctx, result, "Transfer completed", http.StatusOK)
	}
	return utils.SuccessResponse(ctx, session, "Cost entry", http.StatusOK)
}

func (c *TransferController) Back(ctx echo.Context) error {
	session, err := c.service.Back(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Back to operator selection", http.StatusOK)
}

func (c *TransferController) SelectItem(ctx echo.Context) error {
	catalogID, err := parseIDParam(ctx, "catalogId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	session, err := c.service.SelectItem(ctx.Param("id"), catalogID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Item selected", http.StatusOK)
}

func (c *TransferController) DeselectItem(ctx echo.Context) error {
	catalogID, err := parseIDParam(ctx, "catalogId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	session, err := c.service.DeselectItem(ctx.Param("id"), catalogID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Item deselected", http.StatusOK)
}

func (c *TransferController) OpenEntry(ctx echo.Context) error {
	catalogID, err := parseIDParam(ctx, "catalogId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	entry, err := c.service.OpenEntry(ctx.Param("id"), catalogID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, entry, "Entry opened", http.StatusOK)
}

func (c *TransferController) CancelEntry(ctx echo.Context) error {
	if err := c.service.CancelEntry(ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Entry cancelled", http.StatusOK)
}

func (c *TransferController) SaveEntry(ctx echo.Context) error {
	catalogID, err := parseIDParam(ctx, "catalogId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SaveTransferEntryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	session, err := c.service.SaveEntry(ctx.Param("id"), catalogID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Entry saved", http.StatusOK)
}

func (c *TransferController) RemoveEntry(ctx echo.Context) error {
	catalogID, err := parseIDParam(ctx, "catalogId")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	session, err := c.service.RemoveEntry(ctx.Param("id"), catalogID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, session, "Entry removed", http.StatusOK)
}

func (c *TransferController) Summary(ctx echo.Context) error {
	summary, err := c.service.Summary(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, summary, "Transfer summary", http.StatusOK)
}

func (c *TransferController) Finalize(ctx echo.Context) error {
	result, err := c.service.Finalize(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Transfer completed", http.StatusOK)
}

func (c *TransferController) Abandon(ctx echo.Context) error {
	c.service.Abandon(ctx.Param("id"))
	return utils.SuccessResponse(ctx, nil, "Transfer abandoned", http.StatusOK)
}
