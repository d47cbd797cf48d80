package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/config"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/gateway"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	clients := gateway.NewClients(cfg)

	router := gin.New()
	router.Use(gin.Recovery())

	gateway.Register(router, clients, cfg)

	if err := router.Run(cfg.GatewayAddr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
