package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/matplanerare/matplanerare/internal/config"
	"github.com/matplanerare/matplanerare/internal/database"
	"github.com/matplanerare/matplanerare/internal/docsync"
	"github.com/matplanerare/matplanerare/internal/generate"
	"github.com/matplanerare/matplanerare/internal/handlers"
	"github.com/matplanerare/matplanerare/internal/middleware"
	"github.com/matplanerare/matplanerare/internal/services"
	"github.com/matplanerare/matplanerare/internal/store"

	_ "github.com/matplanerare/matplanerare/docs/api" // Swagger docs
)

// @title Matplanerare API
// @version 1.0.0
// @description Household meal planning service with a shared recipe bank
// @termsOfService http://swagger.io/terms/

// @host localhost:3000
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Load the aggregate from the document store
	data, err := services.LoadAppData(db)
	if err != nil {
		log.Fatalf("Failed to load application data: %v", err)
	}
	log.Printf("Loaded %d users, %d recipes", len(data.Users), len(data.Recipes))

	// Mutations mirror to the local store, and to a remote one if configured
	writers := []docsync.Writer{&services.DocumentWriter{DB: db}}
	if cfg.SyncRemoteURL != "" {
		writers = append(writers, docsync.NewHTTPWriter(cfg.SyncRemoteURL))
		log.Printf("Mirroring document writes to %s", cfg.SyncRemoteURL)
	}
	queue := docsync.NewQueue(cfg.SyncQueueSize, writers...)

	appStore := store.New(data, queue)

	// Recipe generation is optional; without a key the route reports 503
	var generateClient *generate.Client
	if cfg.GenerateAPIKey != "" {
		generateClient = generate.NewClient(cfg.GenerateURL, cfg.GenerateAPIKey, cfg.GenerateModel)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("matplanerare")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.APIVersion())

	// Create handlers
	authHandler := &handlers.AuthHandler{Store: appStore}
	usersHandler := &handlers.UsersHandler{Store: appStore}
	recipesHandler := &handlers.RecipesHandler{Store: appStore}
	mealPlanHandler := &handlers.MealPlanHandler{Store: appStore}
	dataHandler := &handlers.DataHandler{DB: db, Store: appStore}
	generateHandler := &handlers.GenerateHandler{Client: generateClient}
	healthHandler := &handlers.HealthHandler{Config: cfg, DB: db}

	// Session routes
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/register", authHandler.Register)
	auth.Post("/initial-password", authHandler.InitialPassword)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/session", authHandler.Session)

	// Account routes (admin operations guarded)
	users := api.Group("/users")
	users.Get("/", usersHandler.List)
	users.Post("/:username/rename", middleware.RequireAdmin(appStore), usersHandler.Rename)
	users.Post("/:username/password", middleware.RequireAdmin(appStore), usersHandler.ResetPassword)
	users.Post("/:username/transfer", middleware.RequireAdmin(appStore), usersHandler.TransferRecipes)
	users.Delete("/:username", middleware.RequireAdmin(appStore), usersHandler.Delete)

	// Recipe bank routes
	recipes := api.Group("/recipes")
	recipes.Get("/", recipesHandler.List)
	recipes.Get("/:id", recipesHandler.Get)
	recipes.Get("/:id/scaled", recipesHandler.Scaled)
	recipes.Post("/", middleware.RequireLogin(appStore), recipesHandler.Create)
	recipes.Post("/import", middleware.RequireLogin(appStore), recipesHandler.Import)
	recipes.Put("/:id", middleware.RequireLogin(appStore), recipesHandler.Update)
	recipes.Delete("/:id", middleware.RequireLogin(appStore), recipesHandler.Delete)

	// Weekly planning routes
	api.Get("/week", mealPlanHandler.Week)
	mealplan := api.Group("/mealplan", middleware.RequireLogin(appStore))
	mealplan.Get("/:week", mealPlanHandler.Get)
	mealplan.Post("/:week/:day", mealPlanHandler.Set)

	// Bulk aggregate and partial writes
	api.Get("/data", dataHandler.GetAppData)
	api.Post("/data/update", dataHandler.UpdateDocument)

	// Recipe generation proxy
	api.Post("/generate", middleware.RequireLogin(appStore), generateHandler.Generate)

	// Health
	api.Get("/health", healthHandler.Health)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	// Drain pending document writes before exit
	queue.Close()
	log.Println("Server stopped")
}
