// Package routes wires the controllers onto the echo router.
package routes

import (
	"atolye-takip/internal/controllers"
	"atolye-takip/pkg/middleware"

	"github.com/labstack/echo/v4"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth         *controllers.AuthController
	Firm         *controllers.FirmController
	Model        *controllers.ModelController
	Workshop     *controllers.WorkshopController
	User         *controllers.UserController
	Technic      *controllers.TechnicController
	CostItem     *controllers.CostItemController
	Order        *controllers.OrderController
	ModelCost    *controllers.ModelCostController
	Board        *controllers.BoardController
	Transfer     *controllers.TransferController
	ExchangeRate *controllers.ExchangeRateController
	Report       *controllers.ReportController
	Ws           *controllers.WsController
}

func InitRouter(e *echo.Echo, c *Controllers, auth *middleware.AuthMiddleware) {
	e.POST("/api/auth/login", c.Auth.Login)
	e.POST("/api/auth/refresh", c.Auth.Refresh)

	api := e.Group("/api", auth.Auth)

	initDictionaryRoutes(api, c)
	initOrderRoutes(api, c)
	initBoardRoutes(api, c)
	initTransferRoutes(api, c)

	api.POST("/model-costs", c.ModelCost.CreateModelCost)
	api.GET("/exchange-rates", c.ExchangeRate.GetRates)
	api.GET("/reports/workshop-costs", c.Report.WorkshopCosts)
	api.GET("/reports/workshop-costs/excel", c.Report.WorkshopCostsExcel)

	e.GET("/ws/board", c.Ws.BoardStream, auth.Auth)
}
