package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"github.com/souma9830/travel-agency-website/internal/config"
	"github.com/souma9830/travel-agency-website/internal/handlers"
	"github.com/souma9830/travel-agency-website/internal/migrations"
	"github.com/souma9830/travel-agency-website/internal/repositories"
	"github.com/souma9830/travel-agency-website/internal/routes"
	"github.com/souma9830/travel-agency-website/internal/services"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := runMigrations(db); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// === Redis (OAuth state nonces) ===
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	stateRepo := repositories.NewOAuthStateRepository(rdb)

	// === Services ===
	authService := services.NewAuthService()
	tokenService := services.NewTokenService(cfg.JWT.Secret)
	otpService := services.NewOtpService(userRepo)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	userService := services.NewUserService(userRepo, authService, tokenService, otpService)
	oauthService := services.NewOAuthService(
		services.OAuthConfig{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			APIBaseURL:   cfg.APIBaseURL,
		},
		userRepo,
		stateRepo,
		authService,
		tokenService,
	)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, emailService)
	userHandler := handlers.NewUserHandler(userService)
	oauthHandler := handlers.NewOAuthHandler(oauthService, cfg.FrontendURL)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	routes.SetupRoutes(router, tokenService, authHandler, userHandler, oauthHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server started on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(context.Background(), db, ".")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, token")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
