package routes

import "github.com/labstack/echo/v4"

func initTransferRoutes(api *echo.Group, c *Controllers) {
	transfers := api.Group("/transfers")
	transfers.POST("", c.Transfer.Open)
	transfers.GET("/:id", c.Transfer.Get)
	transfers.POST("/:id/user", c.Transfer.SelectUser)
	transfers.POST("/:id/next", c.Transfer.Next)
	transfers.POST("/:id/back", c.Transfer.Back)
	transfers.POST("/:id/items/:catalogId/select", c.Transfer.SelectItem)
	transfers.POST("/:id/items/:catalogId/deselect", c.Transfer.DeselectItem)
	transfers.GET("/:id/items/:catalogId/entry", c.Transfer.OpenEntry)
	transfers.POST("/:id/items/:catalogId/entry", c.Transfer.SaveEntry)
	transfers.DELETE("/:id/items/:catalogId", c.Transfer.RemoveEntry)
	transfers.POST("/:id/entry/cancel", c.Transfer.CancelEntry)
	transfers.GET("/:id/summary", c.Transfer.Summary)
	transfers.POST("/:id/finalize", c.Transfer.Finalize)
	transfers.DELETE("/:id", c.Transfer.Abandon)
}
