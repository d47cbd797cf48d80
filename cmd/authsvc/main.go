package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/authsvc"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/config"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/db"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DSN())
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	service := authsvc.NewService(database, cfg.JwtSecret, cfg.JwtExpiresMinutes)

	server := rpc.NewServer("auth")
	authsvc.RegisterCommands(server, service)

	router := gin.New()
	router.Use(gin.Recovery())
	server.Register(router)

	if err := router.Run(cfg.AuthAddr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
