package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"baketrack-backend/internal/handler"
	"baketrack-backend/internal/middleware"
	"baketrack-backend/internal/relay"
	"baketrack-backend/internal/service"
	"baketrack-backend/internal/settings"
	"baketrack-backend/internal/sheet"
	"baketrack-backend/internal/state"
	"baketrack-backend/internal/ws"
	"baketrack-backend/pkg/logging"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	appLog := logging.New()

	// 2. Settings (persisted by the setup wizard, env seeds the default)
	settingsPath := os.Getenv("BAKETRACK_SETTINGS")
	if settingsPath == "" {
		settingsPath = "baketrack_settings.json"
	}
	settingsStore, err := settings.Load(settingsPath, os.Getenv("GOOGLE_SCRIPT_URL"))
	if err != nil {
		appLog.WithError(err).Fatal("failed to load settings file")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	relayClient := relay.New(appLog)
	sheets := sheet.NewClient(relayClient, settingsStore, appLog)
	stateStore := state.New(sheets)

	txService := service.NewTransactionService(sheets, stateStore, wsHub, appLog)
	productService := service.NewProductService(sheets, stateStore, wsHub, appLog)
	reportService := service.NewReportService(stateStore)
	authService := service.NewAuthService(sheets, settingsStore)
	profileService := service.NewProfileService(sheets, stateStore)

	proxyHandler := handler.NewProxyHandler(relayClient)
	dashHandler := handler.NewDashboardHandler(stateStore, settingsStore)
	txHandler := handler.NewTransactionHandler(txService, stateStore)
	productHandler := handler.NewProductHandler(productService, stateStore)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	setupHandler := handler.NewSetupHandler(settingsStore, relayClient)
	profileHandler := handler.NewProfileHandler(profileService)

	// 5. Initial load. Failure is fine here: the wizard may not have run
	// yet, and every page can trigger a manual sync later.
	go func() {
		if !settingsStore.Configured() {
			appLog.Info("spreadsheet endpoint not configured yet, waiting for setup")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		if stateStore.Refresh(ctx) {
			appLog.Info("initial snapshot loaded")
		} else {
			appLog.Warn("initial snapshot fetch failed, serving empty state")
		}
	}()

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "BakeTrack Backend v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	// Proxy relay (the browser's window to the spreadsheet)
	api.Get("/proxy", proxyHandler.Get)
	api.Post("/proxy", proxyHandler.Post)

	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Setup wizard (must work before any login exists)
	setup := api.Group("/setup")
	setup.Get("/config", setupHandler.GetConfig)
	setup.Put("/config", setupHandler.SaveConfig)
	setup.Post("/test", setupHandler.TestConnection)

	// ============ PROTECTED ROUTES ============
	// All routes below require a session token
	protected := api.Group("", middleware.RequireAuth())

	// Snapshot + manual sync
	protected.Get("/data", dashHandler.GetData)
	protected.Post("/data/refresh", dashHandler.Refresh)

	// Transaction Routes
	protected.Get("/transactions", txHandler.List)
	protected.Post("/transactions", txHandler.Create)
	protected.Put("/transactions/:id", txHandler.Update)
	protected.Delete("/transactions/:id", txHandler.Delete)

	// Product Routes
	protected.Get("/products", productHandler.List)
	protected.Post("/products", productHandler.Create)
	protected.Put("/products/:id", productHandler.Update)
	protected.Delete("/products/:id", productHandler.Delete)

	// Report Routes
	protected.Get("/report/summary", reportHandler.Summary)
	protected.Get("/report/top-products", reportHandler.TopProducts)
	protected.Get("/report/weekly", reportHandler.Weekly)
	protected.Get("/report/export", reportHandler.Export)

	// Profile
	protected.Put("/profile", profileHandler.Update)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
