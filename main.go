package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-notify/internal/assets"
	"rental-notify/internal/config"
	"rental-notify/internal/email"
	"rental-notify/internal/email/templates"
	"rental-notify/internal/middleware"
	"rental-notify/internal/notify"
	"rental-notify/internal/store"
	"rental-notify/internal/suppression"
	syncsvc "rental-notify/internal/sync"
	transport "rental-notify/internal/transport/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

var startTime time.Time

func main() {
	startTime = time.Now()
	cfg := config.Load()
	if err := cfg.ValidateSMTP(); err != nil {
		log.Fatalf("❌ [CONFIG] %v", err)
	}
	log.Printf("🔧 Service expected token: %s******", cfg.ServiceExpectedToken[:min(6, len(cfg.ServiceExpectedToken))])

	store.InitDB(cfg)
	db := store.GetDB()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("⚠️ [REDIS] Unreachable, suppression cache disabled: %v", err)
			rdb = nil
		} else {
			log.Println("✅ [REDIS] Suppression cache connected")
		}
	} else {
		log.Println("⚠️ [REDIS] REDIS_ADDR not set, suppression cache disabled")
	}

	suppressions := suppression.NewStore(db, rdb)

	var r2Client *assets.R2Client
	if cfg.R2AccountID != "" {
		client, err := assets.NewR2Client(assets.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			AccessKeySecret: cfg.R2AccessKeySecret,
			BucketName:      cfg.R2BucketName,
			PublicURL:       cfg.R2PublicURL,
		})
		if err != nil {
			log.Fatalf("❌ [R2] Failed to initialize client: %v", err)
		}
		r2Client = client
		log.Println("✅ [R2] Brand asset client initialized")
	} else {
		log.Println("⚠️ [R2] Not configured, brand asset uploads disabled")
	}

	emailSender := email.NewSender(cfg)

	branding := templates.DefaultBranding()
	branding.BaseURL = cfg.BaseURL

	notifyService := notify.NewNotifyService(emailSender, suppressions, db, branding)
	handler := transport.NewHandler(notifyService)
	adminHandler := transport.NewAdminHandler(notifyService, suppressions, r2Client)
	unsubHandler := transport.NewUnsubscribeHandler(suppressions)
	log.Println("✅ [SERVICE] NotifyService & handlers initialized")

	syncCtx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()
	var syncService *syncsvc.SuppressionSyncService
	if cfg.ComplianceServiceURL != "" {
		syncService = syncsvc.NewSuppressionSyncService(db, suppressions, cfg.ComplianceServiceURL, cfg.ServiceExpectedToken)
		go syncService.StartScheduler(syncCtx, 5*time.Minute)
		log.Printf("🔄 [SYNC] Suppression sync scheduler started (ComplianceServiceURL: %s)", cfg.ComplianceServiceURL)
	} else {
		log.Println("⚠️ [SYNC] COMPLIANCE_SERVICE_URL not set, suppression sync disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:      "rental-notify",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-User-ID,X-User-Roles,X-Service-Token,X-Request-ID,Cache-Control",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
	}))

	// 1. Service-to-service routes
	serviceRoutes := app.Group("/svc/v1/notify", middleware.ServiceAuth(cfg))
	serviceRoutes.Post("/refund-confirmation", handler.SendRefundConfirmation)
	serviceRoutes.Post("/partner-welcome", handler.SendPartnerWelcome)
	serviceRoutes.Post("/partner-reactivated", handler.SendPartnerReactivated)
	serviceRoutes.Post("/partner-application-received", handler.SendPartnerApplicationReceived)
	log.Println("✅ [ROUTES] Registered service routes: /svc/v1/notify/*")

	// 2. Admin routes (via Gateway + admin role)
	adminRoutes := app.Group("/admin", middleware.GatewayAuth(), middleware.AdminRoleAuth())
	adminRoutes.Post("/partners/resend-welcome", adminHandler.ResendPartnerWelcome)
	adminRoutes.Get("/suppressions", adminHandler.ListSuppressions)
	adminRoutes.Get("/audit", adminHandler.ListAuditLog)
	adminRoutes.Post("/assets", adminHandler.UploadBrandAsset)
	log.Println("✅ [ROUTES] Registered admin routes: /admin/*")

	// 3. Public opt-out, linked from email footers
	app.Get("/unsubscribe", unsubHandler.Unsubscribe)
	app.Post("/unsubscribe", unsubHandler.Unsubscribe)
	log.Println("✅ [ROUTES] Registered public route: /unsubscribe")

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		uptime := time.Since(startTime).Round(time.Second)
		return c.JSON(fiber.Map{
			"status":       "ok",
			"service":      "rental-notify",
			"uptime":       uptime.String(),
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
			"redis":        rdb != nil,
			"r2":           r2Client != nil,
			"sync_enabled": syncService != nil,
		})
	})
	log.Println("✅ [ROUTES] Registered /health")

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("🛑 [SHUTDOWN] Graceful shutdown initiated...")
		cancelSync()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ [SHUTDOWN] Error: %v", err)
		}
	}()

	log.Printf("🚀 rental-notify starting...")
	log.Printf("   🔗 Listening on port: %s", cfg.ServerPort)
	log.Printf("   🌐 CORS allowed origins: %s", cfg.AllowedOrigins)
	log.Printf("   📧 SMTP host: %s:%d", cfg.SMTPHost, cfg.SMTPPort)
	log.Printf("   🔗 Link base URL: %s", cfg.BaseURL)
	log.Println("✅ Server ready.")

	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		log.Fatalf("❌ [STARTUP] Server failed to start: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var errMsg string
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		errMsg = e.Message
	} else {
		errMsg = err.Error()
	}
	log.Printf("🔥 [ERROR] [%d] %s %s: %v | IP=%s | UA=%s",
		code,
		c.Method(),
		c.Path(),
		errMsg,
		c.IP(),
		c.Get("User-Agent"),
	)
	return c.Status(code).JSON(fiber.Map{
		"error":      "something went wrong",
		"request_id": c.Get("X-Request-ID"),
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
