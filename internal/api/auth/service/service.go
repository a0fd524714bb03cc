package authService

import (
	"EmployeeAssistant/internal/api/auth"
	hrRepository "EmployeeAssistant/internal/api/hr/repository"
	"EmployeeAssistant/pkg/bcrypt"
	"context"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTokenTTL = time.Hour

type AuthService interface {
	Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	Me(c context.Context, employeeID string) (auth.EmployeeProfile, error)
}

type authService struct {
	log         *logrus.Logger
	hrRepo      hrRepository.Repository
	bcryptUtils bcrypt.IBcrypt
	tokenTTL    time.Duration
}

func New(log *logrus.Logger, hrRepo hrRepository.Repository, bcryptUtils bcrypt.IBcrypt) AuthService {
	return &authService{
		log:         log,
		hrRepo:      hrRepo,
		bcryptUtils: bcryptUtils,
		tokenTTL:    tokenTTLFromEnv(),
	}
}

func tokenTTLFromEnv() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("JWT_TTL_MINUTES"))
	if err != nil || minutes <= 0 {
		return defaultTokenTTL
	}
	return time.Duration(minutes) * time.Minute
}
