package config

import (
	"EmployeeAssistant/database/postgres"
	authHandler "EmployeeAssistant/internal/api/auth/handler"
	authService "EmployeeAssistant/internal/api/auth/service"
	chatHandler "EmployeeAssistant/internal/api/chat/handler"
	chatRepository "EmployeeAssistant/internal/api/chat/repository"
	chatService "EmployeeAssistant/internal/api/chat/service"
	hrRepository "EmployeeAssistant/internal/api/hr/repository"
	hrService "EmployeeAssistant/internal/api/hr/service"
	"EmployeeAssistant/internal/middleware"
	"EmployeeAssistant/pkg/bcrypt"
	"EmployeeAssistant/pkg/gemini"
	"EmployeeAssistant/pkg/metrics"
	"EmployeeAssistant/pkg/nlp"
	"EmployeeAssistant/pkg/phrasing"
	"EmployeeAssistant/pkg/redis"
	"EmployeeAssistant/pkg/smtp"
	"EmployeeAssistant/pkg/utils"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	bcryptUtils  bcrypt.IBcrypt
	handlers     []handler
	employees    hrRepository.Repository
	catalog      *nlp.Catalog
	redisServer  redis.IRedis
	smtpMailer   smtp.ItfSmtp
	geminiClient gemini.IGemini
	hrOptions    []hrService.Option
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.employees == nil {
		return nil, fmt.Errorf("employee store is required")
	}
	if server.redisServer == nil {
		return nil, fmt.Errorf("redis is required for chat sessions")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithEmployeeStore picks the record store from STORE_DRIVER: "postgres"
// connects with the DB_* settings, anything else reads EMPLOYEE_DATA_FILE.
func WithEmployeeStore() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before the employee store")
		}

		if os.Getenv("STORE_DRIVER") == "postgres" {
			db, err := postgres.New()
			if err != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
				return fmt.Errorf("failed to create database connection: %w", err)
			}
			s.db = db
			s.employees = hrRepository.New(db, s.log)
			return nil
		}

		if s.bcryptUtils == nil {
			s.bcryptUtils = bcrypt.New()
		}

		path := os.Getenv("EMPLOYEE_DATA_FILE")
		if path == "" {
			path = "data/employees.json"
		}

		store, err := hrRepository.NewFileStore(path, s.bcryptUtils, s.log)
		if err != nil {
			s.log.Errorf("Failed to load employee file %s: %v", path, err)
			return fmt.Errorf("failed to load employee file: %w", err)
		}
		s.employees = store
		return nil
	}
}

// WithCatalog loads INTENT_CATALOG_FILE, or the built-in catalog when unset.
func WithCatalog() ServerOption {
	return func(s *Server) error {
		catalog, err := nlp.LoadCatalog(os.Getenv("INTENT_CATALOG_FILE"))
		if err != nil {
			return fmt.Errorf("failed to load intent catalog: %w", err)
		}
		s.catalog = catalog
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSMTPMailer(smtpMailer smtp.ItfSmtp) ServerOption {
	return func(s *Server) error {
		s.smtpMailer = smtpMailer
		return nil
	}
}

func WithHROptions(opts ...hrService.Option) ServerOption {
	return func(s *Server) error {
		s.hrOptions = append(s.hrOptions, opts...)
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

// WithGeminiClient never fails: without a key replies use the fixed templates.
func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				if errors.Is(err, gemini.ErrMissingAPIKey) {
					s.log.Warn("GEMINI_API_KEY not set, replies will use fallback templates")
				} else {
					s.log.Errorf("Failed to create Gemini client: %v", err)
				}
			}
			return nil
		}
		s.geminiClient = client
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() error {
	if s.catalog == nil {
		catalog, err := nlp.DefaultCatalog()
		if err != nil {
			return err
		}
		s.catalog = catalog
	}

	// HR Domain
	hrServices := hrService.New(s.log, s.employees, s.smtpMailer, s.utils, s.hrOptions...)
	if missing := hrServices.MissingHandlers(s.catalog); len(missing) > 0 {
		return fmt.Errorf("intent catalog has intents without handlers: %v", missing)
	}

	// Auth Domain
	authServices := authService.New(s.log, s.employees, s.bcryptUtils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Chat Domain
	var renderer phrasing.Renderer
	if s.geminiClient != nil {
		renderer = phrasing.NewGeminiRenderer(s.geminiClient, s.log)
	}
	sessions := chatRepository.New(s.redisServer, s.log)
	chatServices := chatService.New(
		s.log,
		s.catalog,
		nlp.NewMatcher(s.catalog),
		nlp.NewExtractor(nlp.WithTagger(s.companyGazetteer(hrServices))),
		hrServices,
		authServices,
		renderer,
		sessions,
	)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.handlers = append(s.handlers, authHandlers, chatHandlers)

	s.log.WithFields(logrus.Fields{
		"intents":  s.catalog.Len(),
		"phrasing": s.geminiClient != nil,
	}).Info("Handlers registered")

	return nil
}

// companyGazetteer tags the company name and holiday names. An unreadable
// company record leaves the tagger empty.
func (s *Server) companyGazetteer(hr hrService.IHRService) *nlp.Gazetteer {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	phrases := map[string]nlp.EntityLabel{}
	info, err := hr.CompanyInfo(ctx)
	if err != nil {
		s.log.Warnf("Company record unavailable, named-entity tagging disabled: %v", err)
		return nlp.NewGazetteer(phrases)
	}

	if info.Name != "" {
		phrases[info.Name] = nlp.LabelOther
	}
	for _, holiday := range info.Holidays {
		if name := holidayName(holiday); name != "" {
			phrases[name] = nlp.LabelDate
		}
	}
	return nlp.NewGazetteer(phrases)
}

// holidayName drops a leading ISO date from entries like "2025-10-20 Diwali".
func holidayName(entry string) string {
	fields := strings.Fields(entry)
	if len(fields) > 1 {
		if _, err := time.Parse("2006-01-02", fields[0]); err == nil {
			fields = fields[1:]
		}
	}
	return strings.Join(fields, " ")
}

func (s *Server) Run() error {
	s.mountRoutes()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) mountRoutes() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware)

	s.setupHealthCheck()
	s.engine.Get("/metrics", metrics.Handler())

	router := s.engine.Group("/api/v1", s.middleware.NewRateLimiter)
	for _, h := range s.handlers {
		h.Start(router)
	}
}

// Shutdown drains the listener, then releases the external clients.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err := s.engine.ShutdownWithContext(ctx)

	if s.geminiClient != nil {
		if closeErr := s.geminiClient.Close(); closeErr != nil {
			s.log.Errorf("Failed to close Gemini client: %v", closeErr)
		}
	}
	if s.db != nil {
		if closeErr := s.db.Close(); closeErr != nil {
			s.log.Errorf("Failed to close database: %v", closeErr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
		defer cancel()

		status := "ok"
		if err := s.redisServer.Ping(pingCtx); err != nil {
			status = "unavailable"
		}

		return ctx.JSON(fiber.Map{
			"message":       "Server is Healthy!",
			"session_store": status,
			"intents":       s.catalog.Len(),
		})
	})
}
