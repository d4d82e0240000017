package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/domain"
	"taskboard/internal/middleware"
	"taskboard/internal/modules/auth"
	"taskboard/internal/modules/task"
	"taskboard/internal/modules/user"
	jwtsvc "taskboard/internal/pkg/jwt"
	"taskboard/internal/pkg/response"
	"taskboard/internal/pkg/upload"
	"taskboard/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		log.Fatal(err)
	}

	tokens, err := jwtsvc.New(jwtsvc.Config{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	storage := upload.NewStorage(cfg.UploadDir)
	cookies := auth.CookieWriter{
		Secure:     cfg.IsProduction(),
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, storage, cookies)

	taskService := task.NewService(taskRepo)
	taskHandler := task.NewHandler(taskService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService, storage)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	r.Static("/static", cfg.UploadDir)

	r.GET("/", func(c *gin.Context) {
		response.JSON(c, http.StatusOK, nil, "Your backend is working fine")
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Session(tokens, authService, cookies))
		{
			authHandler.RegisterProtectedRoutes(protected)
			taskHandler.RegisterRoutes(protected)
			userHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
