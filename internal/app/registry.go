package app

import (
	"context"
	"time"

	"powerleave/internal/balance"
	"powerleave/internal/closure"
	"powerleave/internal/employee"
	"powerleave/internal/leaverequest"
	"powerleave/internal/leavetype"
	"powerleave/internal/messaging/kafka"
	"powerleave/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB)
	requestRepo := leaverequest.NewRepository(gormDB)
	closureRepo := closure.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	balanceService := balance.NewService(gormDB, balanceRepo, leaveTypeRepo, employeeRepo)
	requestService := leaverequest.NewServiceWithOutbox(
		gormDB, requestRepo, leaveTypeRepo, employeeRepo, balanceRepo, outboxRepo,
	)
	closureService := closure.NewServiceWithOutbox(
		gormDB, closureRepo, requestRepo, employeeRepo, leaveTypeRepo, outboxRepo,
	)

	// The global catalog must exist before any request references it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := leaveTypeService.EnsureDefaults(ctx); err != nil {
		return err
	}

	// --- Handlers ---
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	balanceHandler := balance.NewHandler(balanceService)
	requestHandler := leaverequest.NewHandlerWithRedis(requestService, rdb)
	closureHandler := closure.NewHandler(closureService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(50), 100))

	api := router.Group("/api/v1")
	{
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		balance.RegisterRoutes(api, balanceHandler)
		leaverequest.RegisterRoutes(api, requestHandler, rdb, zap.L())
		closure.RegisterRoutes(api, closureHandler, zap.L())
	}

	return nil
}
