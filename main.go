package main

import (
	"log"

	"frappeinsight/ai"
	"frappeinsight/cache"
	"frappeinsight/config"
	"frappeinsight/db"
	_ "frappeinsight/docs" // Swagger docs
	"frappeinsight/frappe"
	"frappeinsight/handlers"
	"frappeinsight/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.GetConfig()
	if cfg.AIAPIKey == "" {
		log.Fatal("AI_API_KEY is not set")
	}

	// Initialize session store
	store, err := db.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize cache
	appCache := cache.New()

	// Initialize AI client
	aiService, err := ai.New(cfg.AIAPIKey, cfg.ModelName, cfg.AIBaseURL, appCache)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}
	defer aiService.Close()

	// Initialize Frappe gateway and chat service
	gateway := frappe.NewClient()
	chatService, err := service.New(store, aiService, gateway, appCache)
	if err != nil {
		log.Fatalf("Failed to initialize chat service: %v", err)
	}

	h := handlers.New(chatService)

	// Setup Gin router
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Cache-Control", "X-Requested-With"}
	r.Use(cors.New(corsConfig))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Routes
	r.GET("/health", h.HealthHandler)
	r.POST("/api/chat", h.ChatHandler)
	r.POST("/api/chat/retry", h.RetryHandler)
	r.GET("/api/chat/history", h.HistoryHandler)
	r.POST("/api/session/reset", h.ResetHandler)

	r.POST("/api/connect", h.ConnectHandler)
	r.POST("/api/disconnect", h.DisconnectHandler)
	r.GET("/api/schema", h.SchemaHandler)
	r.GET("/api/suggestions", h.SuggestionsHandler)

	r.GET("/api/memory", h.ListMemoryHandler)
	r.POST("/api/memory", h.AddMemoryHandler)
	r.DELETE("/api/memory/:index", h.RemoveMemoryHandler)

	r.GET("/api/export/chat", h.ExportChatHandler)
	r.POST("/api/export/chart", h.ExportChartHandler)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
