package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"playex_v2/internal/api"
	"playex_v2/internal/app/service"
	"playex_v2/internal/common/security"
	"playex_v2/internal/domain/repository"
	"playex_v2/internal/platform/cache"
	"playex_v2/internal/platform/config"
	"playex_v2/internal/platform/database"
	"playex_v2/internal/platform/logger"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize Logger
	logger.Init()
	defer logger.Sync()

	// 3. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 4. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()
	if err := database.Migrate(startupCtx); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	if config.AppConfig.SeedOnStartup {
		if err := database.Seed(startupCtx); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
	}
	fmt.Println("Schema ready.")

	// 5. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()
	fmt.Println("Redis connected.")

	// 6. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	solutionRepo := repository.NewPgSolutionRepository(database.DB)
	taskRepo := repository.NewPgTaskRepository(database.DB)
	practiceStore := repository.NewRedisPracticeStore(cache.RDB)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	identityService := service.NewIdentityService(userRepo)
	catalogService := service.NewCatalogService(problemRepo)
	solveService := service.NewSolveService(problemRepo, solutionRepo)
	userService := service.NewUserService(userRepo, cache.RDB)
	taskService := service.NewTaskService(taskRepo)
	practiceService := service.NewPracticeService(problemRepo, practiceStore)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, identityService, catalogService, solveService, userService, taskService, practiceService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
