package routes

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/aadyanvi/wealth-admin/internal/admin"
	"github.com/aadyanvi/wealth-admin/internal/config"
	"github.com/aadyanvi/wealth-admin/internal/document"
	"github.com/aadyanvi/wealth-admin/internal/ledger"
	"github.com/aadyanvi/wealth-admin/internal/middleware"
	"github.com/aadyanvi/wealth-admin/internal/notification"
	"github.com/aadyanvi/wealth-admin/internal/plan"
	"github.com/aadyanvi/wealth-admin/internal/session"
	"github.com/aadyanvi/wealth-admin/internal/stats"
	"github.com/aadyanvi/wealth-admin/internal/transaction"
	"github.com/aadyanvi/wealth-admin/internal/user"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Storage backends: Postgres/Redis in deployment, in-memory in dev.
	var books ledger.Ledger
	if d.DB != nil {
		books = ledger.NewPostgresLedger(d.DB)
	} else {
		books = ledger.NewInMemory()
	}
	if err := books.EnsureAccount(context.Background(), ledger.SettlementAccountCode); err != nil {
		return fmt.Errorf("provision settlement account: %w", err)
	}

	var sessions session.Store
	if d.Cache != nil {
		sessions = session.NewRedisStore(d.Cache, d.Cfg.SessionTTL)
	} else {
		sessions = session.NewMemoryStore(d.Cfg.SessionTTL)
	}

	var (
		adminRepo admin.Repository
		userRepo  user.Repository
		planRepo  plan.Repository
		txRepo    transaction.Repository
	)
	if d.DB != nil {
		adminRepo = admin.NewPostgresRepository(d.DB)
		userRepo = user.NewPostgresRepository(d.DB)
		planRepo = plan.NewPostgresRepository(d.DB)
		txRepo = transaction.NewPostgresRepository(d.DB)
	} else {
		adminRepo = admin.NewMemoryRepository()
		userRepo = user.NewMemoryRepository()
		planRepo = plan.NewMemoryRepository()
		txRepo = transaction.NewMemoryRepository()
	}

	// Services
	adminSvc := admin.NewService(adminRepo)
	if err := adminSvc.Seed(context.Background(), d.Cfg.AdminEmail, d.Cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}
	userSvc := user.NewService(userRepo, books)
	planSvc := plan.NewService(planRepo, d.Logger)
	notifier := notification.NewLoggerNotifier(d.Logger)
	txSvc := transaction.NewService(txRepo, books, d.Logger).WithNotifier(notifier)
	statsSvc := stats.NewService(books, planSvc, txSvc)

	docStore, err := document.NewDiskStore(d.Cfg.UploadDir)
	if err != nil {
		return err
	}

	// Handlers
	adminHandler := admin.NewHandler(d.Cfg, adminSvc, sessions)
	userHandler := user.NewHandler(userSvc)
	planHandler := plan.NewHandler(planSvc, d.Logger)
	txHandler := transaction.NewHandler(txSvc, d.Logger)
	statsHandler := stats.NewHandler(statsSvc, d.Logger)
	docHandler := document.NewHandler(docStore, d.Cfg.PublicBaseURL, d.Logger)

	// Uploaded documents are served back at the URLs the upload endpoint hands out.
	app.Static("/uploads", docStore.Dir())

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	adminGroup := api.Group("/admin")

	// Public: the auth probe and login/logout never require a session.
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(adminGroup, adminHandler, rateLimiter)

	// Everything else is gated by the opaque session cookie.
	sessionGuard := middleware.RequireSession(d.Cfg.SessionCookie, sessions)
	protected := adminGroup.Group("", sessionGuard)
	RegisterUserRoutes(protected, userHandler)
	RegisterPlanRoutes(protected, planHandler)
	RegisterTransactionRoutes(protected, txHandler)
	RegisterStatsRoutes(protected, statsHandler)

	documents := api.Group("/documents", sessionGuard)
	RegisterDocumentRoutes(documents, docHandler)

	return nil
}
