package balance

import (
	"powerleave/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	balances := r.Group("/leave-balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("", handler.GetAll)
		balances.POST("/provision", middleware.AdminOnly(), handler.Provision)
	}
}
