package controllers

import (
	"fmt"
	"net/http"
	"time"

	"atolye-takip/internal/services"
	"atolye-takip/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ReportController struct {
	service services.ReportServiceInterface
	logger  *zap.Logger
}

func NewReportController(service services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{service: service, logger: logger}
}

func (c *ReportController) WorkshopCosts(ctx echo.Context) error {
	rows, err := c.service.WorkshopCosts(ctx.Request().Context(),
		ctx.QueryParam("from"), ctx.QueryParam("to"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rows, "Workshop cost report", http.StatusOK)
}

func (c *ReportController) WorkshopCostsExcel(ctx echo.Context) error {
	buf, err := c.service.WorkshopCostsExcel(ctx.Request().Context(),
		ctx.QueryParam("from"), ctx.QueryParam("to"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := fmt.Sprintf("workshop-costs-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
