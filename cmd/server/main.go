package main

import (
	"fmt"
	"log"
	"time"

	"gamerslobby/backend/internal/auth"
	"gamerslobby/backend/internal/config"
	"gamerslobby/backend/internal/database"
	"gamerslobby/backend/internal/handler"
	"gamerslobby/backend/internal/repository"
	"gamerslobby/backend/internal/router"

	// Swagger imports
	_ "gamerslobby/backend/docs" // This is important for swag to find the generated docs
)

// @title           Gamers' Lobby API
// @version         1.0
// @description     REST backend for the gaming-lobby wagering platform.
// @host            localhost:8000
// @BasePath        /
// @securityDefinitions.apiKey CookieAuth
// @in cookie
// @name user_token
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Unable to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)

	users := repository.NewUserRepository(db)
	games := repository.NewGameRepository(db)
	consoles := repository.NewConsoleRepository(db)
	lobbies := repository.NewLobbyRepository(db)

	r := router.New(
		cfg,
		tokens,
		handler.NewAuthHandler(users, tokens),
		handler.NewUserHandler(users),
		handler.NewGameHandler(games),
		handler.NewConsoleHandler(consoles),
		handler.NewLobbyHandler(lobbies),
	)

	fmt.Println("Server is running on :" + cfg.Port)
	fmt.Println("Swagger UI is available at http://localhost:" + cfg.Port + "/swagger/index.html")
	log.Fatal(r.Run(":" + cfg.Port))
}
