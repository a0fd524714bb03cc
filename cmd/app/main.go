package main

import (
	hrService "EmployeeAssistant/internal/api/hr/service"
	"EmployeeAssistant/internal/config"
	"EmployeeAssistant/pkg/log"
	"EmployeeAssistant/pkg/redis"
	"EmployeeAssistant/pkg/smtp"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()
	smtpMailer := smtp.New()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithBcryptUtils(),
		config.WithUtils(),
		config.WithEmployeeStore(),
		config.WithCatalog(),
		config.WithRedisServer(redisServer),
		config.WithSMTPMailer(smtpMailer),
		config.WithHROptions(hrService.WithHRNotifyEmail(os.Getenv("HR_NOTIFY_EMAIL"))),
		config.WithMiddleware(),
		config.WithGeminiClient(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(); err != nil {
		logger.Fatalf("Error registering handlers: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
