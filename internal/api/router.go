package api

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/welldanyogia/recipe-api-backend/internal/api/handlers"
	"github.com/welldanyogia/recipe-api-backend/internal/api/middleware"
	"github.com/welldanyogia/recipe-api-backend/internal/logger"
	"github.com/welldanyogia/recipe-api-backend/internal/repository"
	"github.com/welldanyogia/recipe-api-backend/internal/services"
	"github.com/welldanyogia/recipe-api-backend/internal/storage"
	"github.com/welldanyogia/recipe-api-backend/internal/validator"
	"gorm.io/gorm"
)

// DefaultMediaURL is the URL prefix under which MediaRoot is served
const DefaultMediaURL = "/media"

// RouterConfig holds dependencies for the router
type RouterConfig struct {
	DB             *gorm.DB
	FileStorage    storage.FileStorage
	Logger         *slog.Logger
	SecurityLogger *logger.SecurityLogger
	UserService    services.UserService
	TokenService   services.TokenService
	IDGenerator    storage.IDGenerator // nil = random UUIDs

	// Security configuration
	AllowedOrigins []string // Allowed CORS origins
	Production     bool     // Drops wildcard origins
	RateLimit      float64  // Requests per second (0 = default)
	RateBurst      int      // Burst size for rate limiter

	// Media configuration
	MediaRoot string // Directory served under MediaURL (empty = not served)
	MediaURL  string // Public prefix of stored image paths
}

// NewRouter creates and configures the Echo router with all routes
func NewRouter(cfg *RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.NewRequestValidator()

	secLogger := cfg.SecurityLogger
	if secLogger == nil {
		secLogger = logger.NewSecurityLogger()
	}

	mediaURL := cfg.MediaURL
	if mediaURL == "" {
		mediaURL = DefaultMediaURL
	}

	// Security Middleware (applied in correct order)
	// 1. Recover from panics
	e.Use(middleware.Recover())

	// 2. Security headers (applied to all responses)
	e.Use(middleware.SecureHeaders())

	// 3. CORS
	e.Use(middleware.SecureCORS(cfg.AllowedOrigins, cfg.Production))

	// 4. Rate limiting
	e.Use(middleware.RateLimiter(cfg.RateLimit, cfg.RateBurst, secLogger))

	// 5. Request logging
	if cfg.Logger != nil {
		e.Use(middleware.RequestLogger(cfg.Logger))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	tagRepo := repository.NewTagRepository(cfg.DB)
	ingredientRepo := repository.NewIngredientRepository(cfg.DB)
	recipeRepo := repository.NewRecipeRepository(cfg.DB)

	userService := cfg.UserService
	if userService == nil {
		userService = services.NewUserService(userRepo, services.UserServiceConfig{})
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB, cfg.FileStorage)
	userHandler := handlers.NewUserHandler(userService, cfg.TokenService, secLogger)
	adminHandler := handlers.NewAdminHandler(userService)
	tagHandler := handlers.NewTagHandler(tagRepo)
	ingredientHandler := handlers.NewIngredientHandler(ingredientRepo)
	recipeHandler := handlers.NewRecipeHandler(recipeRepo, tagRepo, ingredientRepo, mediaURL)
	if cfg.FileStorage != nil {
		recipeHandler = handlers.NewRecipeHandlerWithStorage(
			recipeRepo, tagRepo, ingredientRepo,
			cfg.FileStorage, cfg.IDGenerator, mediaURL, secLogger,
		)
	}

	// Health routes (no auth required)
	e.GET("/health", healthHandler.Health)
	e.GET("/ready", healthHandler.Ready)

	// Uploaded media
	if cfg.MediaRoot != "" && strings.HasPrefix(mediaURL, "/") {
		e.Static(mediaURL, cfg.MediaRoot)
	}

	// API routes
	api := e.Group("/api")

	// Public account routes
	api.POST("/users", userHandler.Register)
	api.POST("/users/token", userHandler.Token)

	// Everything below requires a valid token
	auth := middleware.TokenAuth(cfg.TokenService, userRepo, secLogger)

	api.GET("/users/me", userHandler.Me, auth)
	api.PATCH("/users/me", userHandler.UpdateMe, auth)

	// Admin routes
	admin := api.Group("/admin", auth, middleware.RequireStaff(secLogger))
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)

	// Tag routes
	tags := api.Group("/tags", auth)
	tags.GET("", tagHandler.List)
	tags.POST("", tagHandler.Create)
	tags.PUT("/:id", tagHandler.Update)
	tags.PATCH("/:id", tagHandler.Update)
	tags.DELETE("/:id", tagHandler.Delete)

	// Ingredient routes
	ingredients := api.Group("/ingredients", auth)
	ingredients.GET("", ingredientHandler.List)
	ingredients.POST("", ingredientHandler.Create)
	ingredients.PUT("/:id", ingredientHandler.Update)
	ingredients.PATCH("/:id", ingredientHandler.Update)
	ingredients.DELETE("/:id", ingredientHandler.Delete)

	// Recipe routes
	recipes := api.Group("/recipes", auth)
	recipes.GET("", recipeHandler.List)
	recipes.POST("", recipeHandler.Create)
	recipes.GET("/:id", recipeHandler.Get)
	recipes.PUT("/:id", recipeHandler.Replace)
	recipes.PATCH("/:id", recipeHandler.Patch)
	recipes.DELETE("/:id", recipeHandler.Delete)
	recipes.POST("/:id/image", recipeHandler.UploadImage)
	recipes.GET("/:id/image", recipeHandler.DownloadImage)

	return e
}
