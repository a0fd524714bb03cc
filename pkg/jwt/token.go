package jwtPkg

import (
	"EmployeeAssistant/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

var ErrMissingClaims = errors.New("token claims are missing required fields")

func Sign(Data map[string]interface{}, ExpiredAt time.Duration) (string, int64, error) {
	expiredAt := time.Now().Add(ExpiredAt).Unix()

	JWTSecretKey := os.Getenv("JWT_ACCESS_TOKEN_SECRET")
	if JWTSecretKey == "" {
		return "", 0, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET not set")
	}

	claims := jwt.MapClaims{}
	claims["exp"] = expiredAt
	claims["authorization"] = true

	for i, v := range Data {
		claims[i] = v
	}

	to := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	accessToken, err := to.SignedString([]byte(JWTSecretKey))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return accessToken, expiredAt, nil
}

// BearerToken pulls the raw token out of an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("empty Authorization header")
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return "", errors.New("invalid Authorization format")
	}

	accessToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if accessToken == "" {
		return "", errors.New("empty token")
	}

	return accessToken, nil
}

func ParseToken(accessToken string, secretEnvKey string) (*jwt.Token, error) {
	JWTSecretKey := os.Getenv(secretEnvKey)
	if JWTSecretKey == "" {
		return nil, errors.New("JWT secret not configured")
	}

	return jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(JWTSecretKey), nil
	})
}

func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (*jwt.Token, error) {
	log := logrus.WithField("func", "VerifyTokenHeader")

	accessToken, err := BearerToken(c.Get("Authorization"))
	if err != nil {
		log.WithError(err).Debug("Authorization header rejected")
		return nil, err
	}

	token, err := ParseToken(accessToken, secretEnvKey)
	if err != nil {
		log.WithError(err).Warn("Failed to parse JWT token")
		return nil, err
	}

	return token, nil
}

func LoginDataFromToken(token *jwt.Token) (entity.UserLoginData, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	id, idOK := claims["id"].(string)
	email, emailOK := claims["email"].(string)
	username, usernameOK := claims["username"].(string)
	if !idOK || !emailOK || !usernameOK || id == "" {
		return entity.UserLoginData{}, ErrMissingClaims
	}

	return entity.UserLoginData{
		ID:       id,
		Email:    email,
		Username: username,
	}, nil
}

func GetUserLoginData(c *fiber.Ctx) (entity.UserLoginData, error) {
	userData := c.Locals("user")

	user, ok := userData.(entity.UserLoginData)
	if !ok {
		return entity.UserLoginData{}, fiber.ErrUnauthorized
	}

	return user, nil
}
