package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"gamerslobby/backend/internal/auth"
	"gamerslobby/backend/internal/config"
	apierr "gamerslobby/backend/internal/errors"
	"gamerslobby/backend/internal/handler"
)

// New wires middleware and routes. The chain order is fixed per route:
// auth -> record-exists (PUT) -> validate -> uniqueness guards -> handler,
// with the error middleware as the single terminal stage.
func New(
	cfg *config.Config,
	tokens *auth.TokenService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	gameHandler *handler.GameHandler,
	consoleHandler *handler.ConsoleHandler,
	lobbyHandler *handler.LobbyHandler,
) *gin.Engine {
	handler.RegisterTagNames()

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Range"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(apierr.Middleware())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	router.POST("/login", authHandler.Login)

	users := router.Group("/utilisateurs")
	{
		users.GET("", auth.Required(tokens), auth.AdminOnly(), userHandler.GetAll)
		users.GET("/:id", userHandler.GetByID)
		users.POST("", userHandler.Validate, userHandler.EmailIsFree, userHandler.PseudoIsFree, userHandler.Create)
		users.PUT("/:id", auth.Required(tokens), userHandler.RecordExists, userHandler.Validate, userHandler.EmailIsFree, userHandler.PseudoIsFree, userHandler.Update)
		users.DELETE("/:id", auth.Required(tokens), auth.AdminOnly(), userHandler.Delete)
	}

	games := router.Group("/games")
	{
		games.GET("", auth.Required(tokens), auth.AdminOnly(), gameHandler.GetAll)
		games.GET("/:id", gameHandler.GetByID)
		games.POST("", gameHandler.Validate, gameHandler.NameIsFree, gameHandler.Create)
		games.PUT("/:id", auth.Required(tokens), gameHandler.RecordExists, gameHandler.Validate, gameHandler.NameIsFree, gameHandler.Update)
		games.DELETE("/:id", auth.Required(tokens), auth.AdminOnly(), gameHandler.Delete)
	}

	consoles := router.Group("/consoles")
	{
		consoles.GET("", auth.Required(tokens), auth.AdminOnly(), consoleHandler.GetAll)
		consoles.GET("/:id", consoleHandler.GetByID)
		consoles.POST("", consoleHandler.Validate, consoleHandler.NameIsFree, consoleHandler.Create)
		consoles.PUT("/:id", auth.Required(tokens), consoleHandler.RecordExists, consoleHandler.Validate, consoleHandler.NameIsFree, consoleHandler.Update)
		consoles.DELETE("/:id", auth.Required(tokens), auth.AdminOnly(), consoleHandler.Delete)
	}

	lobbies := router.Group("/lobbies")
	{
		lobbies.GET("", auth.Required(tokens), auth.AdminOnly(), lobbyHandler.GetAll)
		lobbies.GET("/:id", lobbyHandler.GetByID)
		lobbies.POST("", lobbyHandler.Validate, lobbyHandler.Create)
		lobbies.PUT("/:id", auth.Required(tokens), lobbyHandler.RecordExists, lobbyHandler.Validate, lobbyHandler.Update)
		lobbies.DELETE("/:id", auth.Required(tokens), auth.AdminOnly(), lobbyHandler.Delete)
	}

	return router
}
