package leavetype

import (
	"powerleave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", handler.GetAll)
		types.POST("", middleware.AdminOnly(), handler.Create)
		types.PUT("/:id", middleware.AdminOnly(), handler.Update)
		types.DELETE("/:id", middleware.AdminOnly(), handler.Delete)
	}
}
