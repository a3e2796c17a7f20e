package controllers

import (
	"net/http"

	"atolye-takip/internal/dto"
	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BoardController struct {
	service services.KanbanServiceInterface
	logger  *zap.Logger
}

func NewBoardController(service services.KanbanServiceInterface, logger *zap.Logger) *BoardController {
	return &BoardController{service: service, logger: logger}
}

func (c *BoardController) GetBoard(ctx echo.Context) error {
	mode := ctx.QueryParam("mode")
	if mode == "" {
		mode = services.BoardModeStatus
	}

	boardDTO, err := c.service.Board(ctx.Request().Context(), mode)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, boardDTO, "Board fetched", http.StatusOK)
}

// Move carries out one drag gesture end to end. A workshop-board drop does
// not commit anything; the response carries the pending transfer session
// the client must complete through the wizard.
func (c *BoardController) Move(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.MoveOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.service.Move(ctx.Request().Context(), userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Move processed", http.StatusOK)
}
