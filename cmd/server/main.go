package main

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/neestoralvz/app-anime-conexion/internal/catalog"
	"github.com/neestoralvz/app-anime-conexion/internal/config"
	"github.com/neestoralvz/app-anime-conexion/internal/database"
	"github.com/neestoralvz/app-anime-conexion/internal/handlers"
	"github.com/neestoralvz/app-anime-conexion/internal/middleware"
	"github.com/neestoralvz/app-anime-conexion/internal/services"
	"github.com/neestoralvz/app-anime-conexion/internal/store"
	"github.com/neestoralvz/app-anime-conexion/internal/ws"

	_ "github.com/neestoralvz/app-anime-conexion/docs"
)

// @title           Anime Conexión API
// @version         1.0
// @description     Two-person anime matching: independent selection, blind cross-rating, deterministic scoring
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	ttlHours, _ := strconv.Atoi(cfg.SessionTTLHours)
	if ttlHours <= 0 {
		ttlHours = 24
	}
	ttl := time.Duration(ttlHours) * time.Hour

	var sessionStore store.Store
	switch cfg.Store {
	case config.StorePostgres:
		db := database.Connect(cfg)
		database.AutoMigrate(db)
		sessionStore = store.NewGorm(db)
	default:
		log.Println("using in-memory session store")
		sessionStore = store.NewMemory()
	}

	hub := ws.NewHub()

	scoringService := services.NewScoringService()
	coordinator := services.NewMatchCoordinator()
	sessionService := services.NewSessionService(sessionStore, coordinator, scoringService, ttl)
	tokenService := services.NewTokenService(cfg.TokenSecret, ttl)
	catalogProvider := catalog.NewSeeded()

	sessionHandler := handlers.NewSessionHandler(sessionService, tokenService, hub)
	gameHandler := handlers.NewGameHandler(sessionService, hub)
	catalogHandler := handlers.NewCatalogHandler(catalogProvider)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:id", wsHandler.HandleWebSocket)

	api := r.Group("/api/v1")
	{
		animes := api.Group("/animes")
		{
			animes.GET("/search", catalogHandler.Search)
			animes.GET("/popular", catalogHandler.Popular)
		}

		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.POST("/join", sessionHandler.JoinSession)

			sessions.GET("/:id", middleware.SessionAuth(tokenService), sessionHandler.GetSession)
			sessions.POST("/:id/selections", middleware.SessionAuth(tokenService), gameHandler.SubmitSelections)
			sessions.POST("/:id/ratings", middleware.SessionAuth(tokenService), gameHandler.SubmitRating)
			sessions.GET("/:id/results", middleware.SessionAuth(tokenService), gameHandler.GetResults)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
