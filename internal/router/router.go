package router

import (
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/cache"
	"taskflow/internal/config"
	"taskflow/internal/handlers"
	"taskflow/internal/middleware"
	"taskflow/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires the full HTTP surface. taskCache may be nil, in which case task
// reads always hit the store.
func New(cfg *config.Config, db *gorm.DB, taskCache cache.Cache) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryWithLog())
	r.Use(newCORS(cfg))

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	userService := services.NewUserService(cfg.Auth.BCryptCost)

	var taskService services.TaskService = services.NewTaskService()
	if taskCache != nil {
		taskService = services.NewCachedTaskService(taskService, taskCache)
	}

	authHandler := handlers.NewAuthHandler(db, userService, tokens)
	taskHandler := handlers.NewTaskHandler(db, taskService)
	healthHandler := handlers.NewHealthHandler(db, taskCache)

	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("", middleware.RequireAuth(tokens))
	protected.PUT("/auth/profile", authHandler.UpdateProfile)
	protected.GET("/tasks", taskHandler.GetTasks)
	protected.POST("/tasks", taskHandler.CreateTask)
	protected.PUT("/tasks/:id", taskHandler.UpdateTask)
	protected.DELETE("/tasks/:id", taskHandler.DeleteTask)

	return r
}

func newCORS(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "x-auth-token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if cfg.AllowAllOrigins() {
		// AllowCredentials cannot be combined with a wildcard origin list,
		// so echo whatever origin the request carries.
		corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORS.FrontendURL}
	}

	return cors.New(corsCfg)
}
