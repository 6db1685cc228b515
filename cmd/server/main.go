package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"preproc-backend/internal/auth"
	"preproc-backend/internal/cache"
	"preproc-backend/internal/config"
	"preproc-backend/internal/database"
	"preproc-backend/internal/db"
	"preproc-backend/internal/handlers"
	"preproc-backend/internal/health"
	apphttp "preproc-backend/internal/http"
	"preproc-backend/internal/middleware"
	"preproc-backend/internal/repositories"
	"preproc-backend/internal/services"
	"preproc-backend/internal/storage"
	"preproc-backend/migrations"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	// Run embedded migrations before serving anything
	migrator := database.NewMigrator(pool, migrations.FS)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := migrator.RunMigrations(ctx); err != nil {
		cancel()
		log.Fatalf("migrations failed: %v", err)
	}
	cancel()

	// Redis is optional; everything degrades gracefully without it
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Unavailable, running without cache: %v", err)
	} else {
		log.Println("[Redis] Connected")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	orderRepo := repositories.NewTransferOrderRepository(pool)
	lineRepo := repositories.NewTransferOrderLineRepository(pool)
	skuRepo := repositories.NewSkuAttributeRepository(pool)
	merchantRepo := repositories.NewEligibleMerchantRepository(pool)
	palletRepo := repositories.NewPalletAssignmentRepository(pool)
	settingsRepo := repositories.NewSystemSettingRepository(pool)
	auditRepo := repositories.NewAuditLogRepository(pool)

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	archiver := storage.NewArchiver(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	statusService := services.NewStatusService(lineRepo, orderRepo, merchantRepo, settingsRepo, auditRepo, cfg)
	orderService := services.NewOrderService(orderRepo, lineRepo, statusService)
	palletService := services.NewPalletService(palletRepo, lineRepo, orderRepo, auditRepo, statusService)
	importService := services.NewImportService(orderRepo, lineRepo, skuRepo, merchantRepo, auditRepo, statusService, cfg)
	merchantService := services.NewMerchantService(merchantRepo)
	settingService := services.NewSystemSettingService(settingsRepo)
	manifestService := services.NewManifestService(palletRepo, orderRepo, archiver)
	labelService := services.NewLabelService(palletRepo, orderRepo, auditRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	orderHandler := handlers.NewTransferOrderHandler(orderService)
	lineHandler := handlers.NewLineHandler(statusService)
	palletHandler := handlers.NewPalletHandler(palletService)
	importHandler := handlers.NewImportHandler(importService)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	settingHandler := handlers.NewSystemSettingHandler(settingService)
	manifestHandler := handlers.NewManifestHandler(manifestService)
	labelHandler := handlers.NewLabelHandler(labelService)
	auditLogHandler := handlers.NewAuditLogHandler(auditRepo)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apphttp.NewRouter(
		authHandler,
		userHandler,
		orderHandler,
		lineHandler,
		palletHandler,
		importHandler,
		merchantHandler,
		settingHandler,
		manifestHandler,
		labelHandler,
		auditLogHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.NewCORS(cfg)(
		middleware.PanicRecovery(
			middleware.RequestLogging(
				middleware.MetricsMiddleware(router))))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Server] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
