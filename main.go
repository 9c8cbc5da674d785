// File: concierge/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concierge/config"
	"concierge/database/repository/records"
	"concierge/handlers"
	"concierge/middleware"
	"concierge/routes"
	"concierge/services/booking"
	ai "concierge/services/intelligence"
	"concierge/services/rag"
	"concierge/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	utils.InitContextCache()

	llm, err := ai.NewGeminiClient(ctx, config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}

	// Repositories.
	bookingRepo := records.NewCSVRepository(config.AppConfig.BookingsFile)

	// Services.
	flow := booking.NewFlow(bookingRepo, logger)
	index := rag.NewIndex(llm, rag.NewChunker(1000, 200), logger)
	ctxStore := ai.NewRedisContextStore(utils.GetContextCacheClient(), 30*time.Minute)
	chatService := ai.NewDefaultChatService(llm, ctxStore, flow, index, config.AppConfig.Timezone, logger)

	if dir := config.AppConfig.DocsDir; dir != "" {
		watcher := rag.NewWatcher(index, dir, logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Sugar().Fatalf("main: failed to start docs watcher: %v", err)
		}
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	bundle := &routes.HandlerBundle{
		Chat:      handlers.NewChatHandler(chatService, logger),
		Documents: handlers.NewDocumentHandler(index, logger),
		Bookings:  handlers.NewBookingLogHandler(bookingRepo, logger),
		Health:    handlers.NewHealthHandler(utils.GetContextCacheClient()),
	}
	routes.RegisterRoutes(router, bundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
