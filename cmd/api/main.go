package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-bizmanager/internal/config"
	"go-bizmanager/internal/handler"
	"go-bizmanager/internal/invoice"
	"go-bizmanager/internal/middleware"
	"go-bizmanager/internal/model"
	"go-bizmanager/internal/repository"
	"go-bizmanager/internal/sequence"
	"go-bizmanager/internal/service"
	"go-bizmanager/internal/storage"
	"go-bizmanager/internal/ws"
	"go-bizmanager/pkg/database"
	"go-bizmanager/pkg/jwt"
	"go-bizmanager/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := logger.New(logger.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, Filename: cfg.LogFile})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.Connect(database.Options{
		Driver: cfg.DBDriver,
		DSN:    cfg.DatabaseURL,
		Debug:  cfg.LogLevel == "debug",
	}, zlog)
	if err != nil {
		zlog.Fatal("Database unavailable", zap.Error(err))
	}
	if err := db.AutoMigrate(model.Tables...); err != nil {
		zlog.Fatal("Migration failed", zap.Error(err))
	}

	// 3. Invoice storage and numbering
	store, err := newStore(ctx, cfg)
	if err != nil {
		zlog.Fatal("Invoice storage unavailable", zap.Error(err))
	}

	var seq sequence.Sequencer = sequence.NewGormSequencer()
	if cfg.InvoiceSequence == "redis" {
		redisSeq, err := sequence.NewRedisSequencer(cfg.RedisURL)
		if err != nil {
			zlog.Fatal("Redis unavailable", zap.Error(err))
		}
		defer redisSeq.Close()
		seq = redisSeq
	}

	// 4. Setup WebSocket Hub
	hub := ws.NewHub(zlog)
	go hub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	movementRepo := repository.NewStockMovementRepo(db)
	userRepo := repository.NewUserRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	seller := invoice.Seller{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		City:    cfg.Company.City,
		Email:   cfg.Company.Email,
	}

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	productService := service.NewProductService(productRepo, movementRepo, db, hub)
	orderService := service.NewOrderService(orderRepo, productRepo, movementRepo, seq, db, hub)
	invoiceService := service.NewInvoiceService(orderRepo, store, invoice.NewRenderer(), seller, cfg.Currency)
	dashboardService := service.NewDashboardService(dashboardRepo, movementRepo)

	if created, err := authService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		zlog.Warn("Failed to seed admin user", zap.Error(err))
	} else if created {
		zlog.Info("Admin user created", zap.String("email", cfg.AdminEmail))
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      "BizManager API",
		ErrorHandler: handler.ErrorHandler(zlog),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestLogger(zlog))

	// 7. Routes
	handler.RegisterRoutes(app, handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
		Employee:  handler.NewEmployeeHandler(employeeService),
		Product:   handler.NewProductHandler(productService),
		Order:     handler.NewOrderHandler(orderService, invoiceService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}, middleware.RequireAuth(tokens, userRepo))

	app.Use("/ws", ws.Upgrade)
	app.Get("/ws", hub.Handler())

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	zlog.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exited")
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.InvoiceStorage == "s3" {
		return storage.NewS3Store(ctx, storage.S3Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.AWSS3Bucket,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Prefix:          "invoices/",
		})
	}
	return storage.NewLocalStore(cfg.InvoiceDir)
}
