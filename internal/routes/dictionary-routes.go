package routes

import "github.com/labstack/echo/v4"

// initDictionaryRoutes mounts the reference-data CRUD surfaces.
func initDictionaryRoutes(api *echo.Group, c *Controllers) {
	firms := api.Group("/firms")
	firms.GET("", c.Firm.GetFirms)
	firms.GET("/:id", c.Firm.FindFirm)
	firms.POST("", c.Firm.CreateFirm)
	firms.PUT("/:id", c.Firm.UpdateFirm)
	firms.DELETE("/:id", c.Firm.DeleteFirm)

	models := api.Group("/models")
	models.GET("", c.Model.GetModels)
	models.GET("/:id", c.Model.FindModel)
	models.POST("", c.Model.CreateModel)
	models.PUT("/:id", c.Model.UpdateModel)
	models.POST("/:id/image", c.Model.UploadModelImage)
	models.DELETE("/:id", c.Model.DeleteModel)

	workshops := api.Group("/workshops")
	workshops.GET("", c.Workshop.GetWorkshops)
	workshops.GET("/:id", c.Workshop.FindWorkshop)
	workshops.POST("", c.Workshop.CreateWorkshop)
	workshops.PUT("/:id", c.Workshop.UpdateWorkshop)
	workshops.DELETE("/:id", c.Workshop.DeleteWorkshop)

	users := api.Group("/users")
	users.GET("", c.User.GetUsers)
	users.GET("/me", c.User.Me)
	users.GET("/:id", c.User.FindUser)
	users.POST("", c.User.CreateUser)
	users.PUT("/:id", c.User.UpdateUser)
	users.DELETE("/:id", c.User.DeleteUser)

	technics := api.Group("/technics")
	technics.GET("", c.Technic.GetTechnics)
	technics.GET("/:id", c.Technic.FindTechnic)
	technics.POST("", c.Technic.CreateTechnic)
	technics.PUT("/:id", c.Technic.UpdateTechnic)
	technics.DELETE("/:id", c.Technic.DeleteTechnic)

	costItems := api.Group("/cost-items")
	costItems.GET("", c.CostItem.GetCostItems)
	costItems.GET("/:id", c.CostItem.FindCostItem)
	costItems.POST("", c.CostItem.CreateCostItem)
	costItems.PUT("/:id", c.CostItem.UpdateCostItem)
	costItems.DELETE("/:id", c.CostItem.DeleteCostItem)

	workshopCostItems := api.Group("/workshop-cost-items")
	workshopCostItems.GET("", c.CostItem.GetWorkshopCostItems)
	workshopCostItems.GET("/:id", c.CostItem.FindWorkshopCostItem)
	workshopCostItems.POST("", c.CostItem.CreateWorkshopCostItem)
	workshopCostItems.PUT("/:id", c.CostItem.UpdateWorkshopCostItem)
	workshopCostItems.DELETE("/:id", c.CostItem.DeleteWorkshopCostItem)
}
