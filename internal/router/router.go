package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
)

// SetupRouter configures the application routes. redisClient may be nil,
// which disables generation rate limiting.
func SetupRouter(
	authHandler *api.AuthHandler,
	recipeHandler *api.RecipeHandler,
	generateHandler *api.GenerateHandler,
	authService *service.AuthService,
	redisClient *redis.Client,
	allowedOrigins []string,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS(allowedOrigins))

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1)

	// Reads are public; a valid token only enriches the response with
	// viewer-specific state.
	recipes := v1.Group("/recipes")
	recipes.Use(middleware.OptionalAuthMiddleware(authService))
	{
		recipes.GET("", recipeHandler.ListRecipes)
		recipes.GET("/:id", recipeHandler.GetRecipe)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/recipes", recipeHandler.CreateRecipe)
		protected.POST("/recipes/:id/save", recipeHandler.SaveRecipe)
		protected.DELETE("/recipes/:id/save", recipeHandler.UnsaveRecipe)

		dashboard := protected.Group("/dashboard")
		{
			dashboard.GET("/recipes", recipeHandler.MyRecipes)
			dashboard.GET("/saved", recipeHandler.SavedRecipes)
		}

		generate := protected.Group("/generate")
		if redisClient != nil {
			limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
				Window:    time.Hour,
				Limit:     20,
				KeyPrefix: "ratelimit:generate",
			})
			generate.Use(limiter.RateLimitMiddleware())
		}
		{
			generate.POST("", generateHandler.Generate)
			generate.GET("/drafts/:id", generateHandler.GetDraft)
			generate.DELETE("/drafts/:id", generateHandler.DeleteDraft)
			generate.POST("/drafts/:id/save", generateHandler.SaveDraft)
		}
	}

	return router
}
