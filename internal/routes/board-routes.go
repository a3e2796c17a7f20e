package routes

import "github.com/labstack/echo/v4"

func initBoardRoutes(api *echo.Group, c *Controllers) {
	board := api.Group("/board")
	board.GET("", c.Board.GetBoard)
	board.POST("/move", c.Board.Move)
}
