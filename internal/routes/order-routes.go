package routes

import "github.com/labstack/echo/v4"

func initOrderRoutes(api *echo.Group, c *Controllers) {
	orders := api.Group("/orders")
	orders.GET("", c.Order.GetOrders)
	orders.GET("/:id", c.Order.FindOrder)
	orders.POST("", c.Order.CreateOrder)
	orders.PUT("/:id", c.Order.UpdateOrder)
	orders.PATCH("/:id/status", c.Order.UpdateOrderStatus)
	orders.PUT("/:id/assign", c.Order.AssignOrder)
	orders.DELETE("/:id", c.Order.DeleteOrder)
	orders.GET("/:id/costs", c.Order.GetOrderCosts)
	orders.POST("/:id/images", c.Order.AddOrderImage)
	orders.DELETE("/:id/images/:imageId", c.Order.DeleteOrderImage)
}
