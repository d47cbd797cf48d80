package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/config"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/rpc"
	"github.com/ilhamalamsyh/dexa-group-technical-test/internal/uploadsvc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	uploader := uploadsvc.NewCloudinaryClient(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	service := uploadsvc.NewService(uploader)

	server := rpc.NewServer("upload")
	uploadsvc.RegisterCommands(server, service)

	router := gin.New()
	router.Use(gin.Recovery())
	server.Register(router)

	if err := router.Run(cfg.UploadAddr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
