package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"mailgenie-backend/config"
	"mailgenie-backend/controllers"
	"mailgenie-backend/internal/router"
	"mailgenie-backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting MailGenie backend on port %s", cfg.Port)

	// Shared outbound HTTP client: created once at startup, reused as a
	// connection pool by all requests, torn down at shutdown.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	defer httpClient.CloseIdleConnections()

	groqService := services.NewGroqService(httpClient, cfg.Groq)
	mailService := services.NewMailService()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), gzip.Gzip(gzip.DefaultCompression))

	emailController := controllers.NewEmailController(groqService, mailService, cfg.SMTP)
	healthController := controllers.NewHealthController(cfg.Version)
	router.Register(r, cfg, emailController, healthController)

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Write timeout must outlast the upstream call budget
		WriteTimeout: cfg.HTTPTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown handler
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown failed: %v", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed:", err)
	}
}
