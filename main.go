package main

import (
	"context"
	"gin-taskboard/constants"
	"gin-taskboard/controllers"
	"gin-taskboard/infra"
	"gin-taskboard/middlewares"
	"gin-taskboard/models"
	"gin-taskboard/repositories"
	"gin-taskboard/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupRouter(db *gorm.DB) *gin.Engine {

	authRepository := repositories.NewAuthRepository(db)
	authService := services.NewAuthService(authRepository)
	authController := controllers.NewAuthController(authService)
	adminController := controllers.NewAdminController(authService)

	categoryRepository := repositories.NewCategoryRepository(db)
	categoryService := services.NewCategoryService(categoryRepository)
	categoryController := controllers.NewCategoryController(categoryService)

	todoRepository := repositories.NewTodoRepository(db)
	todoService := services.NewTodoService(todoRepository, categoryRepository)
	todoController := controllers.NewTodoController(todoService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(cors.New(corsConfig()))

	authRouter := r.Group("/api/auth")
	authRouterWithAuth := r.Group("/api/auth", middlewares.AuthMiddleware(authService))
	todoRouter := r.Group("/api/todos", middlewares.AuthMiddleware(authService))
	categoryRouter := r.Group("/api/categories", middlewares.AuthMiddleware(authService))
	adminRouter := r.Group("/api/admin", middlewares.AuthMiddleware(authService), middlewares.RoleBasedAccessControl(constants.RoleAdmin))

	authRouter.POST("/register", authController.Register)
	authRouter.POST("/login", authController.Login)
	authRouter.POST("/logout", authController.Logout)
	authRouterWithAuth.GET("/me", authController.Me)

	todoRouter.GET("", todoController.FindAll)
	todoRouter.POST("", todoController.Create)
	todoRouter.PUT("/:id", todoController.Update)
	todoRouter.DELETE("/:id", todoController.Delete)

	categoryRouter.GET("", categoryController.FindAll)
	categoryRouter.POST("", categoryController.Create)
	categoryRouter.DELETE("/:id", categoryController.Delete)

	adminRouter.GET("/users", adminController.FindAllUsers)

	return r
}

// corsConfig クッキー認証のためAllowCredentialsを有効にする
func corsConfig() cors.Config {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{origin}
	config.AllowCredentials = true
	return config
}

func initDB() *gorm.DB {
	infra.Initialize()
	db := infra.SetupDB()

	if os.Getenv("AUTO_MIGRATE") == "true" {
		if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Todo{}); err != nil {
			panic("Failed to migrate database")
		}
	}

	return db
}

func main() {
	db := initDB()
	r := setupRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		infra.Logger.Info().Str("port", port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			infra.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infra.Logger.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		infra.Logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	infra.Logger.Info().Msg("Server exited")
}
