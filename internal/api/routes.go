package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/properties/:id", handler.GetProperty)
		api.PUT("/properties/:id", handler.UpdateProperty)
		api.DELETE("/properties/:id", handler.DeleteProperty)
		api.PUT("/properties/:id/portals", handler.UpdatePropertyPortals)

		api.GET("/developments", handler.GetDevelopments)
		api.GET("/developments/map", handler.GetDevelopmentMap)
		api.POST("/developments", handler.CreateDevelopment)
		api.GET("/developments/:id", handler.GetDevelopment)
		api.PUT("/developments/:id", handler.UpdateDevelopment)

		api.GET("/developments/:id/units", handler.GetUnits)
		api.POST("/developments/:id/units", handler.CreateUnit)
		api.POST("/developments/:id/units/bulk", handler.CreateUnitsBulk)
		api.PATCH("/developments/:id/units/:unitId", handler.UpdateUnitStatus)

		api.GET("/portals", handler.GetPortals)
		api.GET("/address/:cep", handler.LookupAddress)

		api.GET("/agents", handler.GetAgents)
		api.POST("/agents", handler.CreateAgent)
		api.GET("/site/:slug", handler.GetSite)
	}

	admin := router.Group("/api/admin")
	{
		admin.GET("/dashboard", handler.GetDashboard)
		admin.GET("/notifier", handler.GetNotifierConfig)
		admin.PUT("/notifier", handler.UpdateNotifierConfig)
		admin.POST("/notifier/test", handler.TestNotifierConfig)
	}
}
