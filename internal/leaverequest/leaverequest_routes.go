package leaverequest

import (
	"powerleave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	requests.Use(middleware.ContextLogger(logger))
	{
		requests.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		requests.GET("",
			middleware.RateLimitByUser(5, 20),
			handler.GetAll,
		)

		requests.GET("/:id",
			middleware.RateLimitByUser(5, 20),
			handler.GetById,
		)

		requests.PUT("/:id/review",
			middleware.RateLimitByUser(2, 5),
			middleware.AdminOnly(),
			handler.Review,
		)
	}
}
