package closure

import (
	"powerleave/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	closures := r.Group("/closures")
	closures.Use(middleware.AuthMiddleware())
	closures.Use(middleware.ContextLogger(logger))
	{
		closures.GET("", handler.GetAll)
		closures.POST("", middleware.AdminOnly(), handler.Create)
		closures.DELETE("/:id", middleware.AdminOnly(), handler.Delete)

		closures.POST("/:id/exceptions",
			middleware.RateLimitByUser(0.5, 2),
			handler.RequestException,
		)
	}

	exceptions := r.Group("/closure-exceptions")
	exceptions.Use(middleware.AuthMiddleware())
	exceptions.Use(middleware.ContextLogger(logger))
	{
		exceptions.GET("", handler.GetAllExceptions)
		exceptions.PUT("/:id/review", middleware.AdminOnly(), handler.ReviewException)
	}
}
