package chatRepository

import (
	"EmployeeAssistant/internal/api/chat"
	"EmployeeAssistant/internal/entity"
	contextPkg "EmployeeAssistant/pkg/context"
	"EmployeeAssistant/pkg/redis"
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	keyPrefix  = "ess:chat:session:"
	defaultTTL = 24 * time.Hour
)

type Repository interface {
	Get(ctx context.Context, id string) (entity.ChatSession, error)
	Save(ctx context.Context, session entity.ChatSession) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	rdb redis.IRedis
	log *logrus.Logger
	ttl time.Duration
}

// New stores sessions as JSON under keyPrefix+id. Every Save refreshes the
// SESSION_TTL_HOURS expiry.
func New(rdb redis.IRedis, log *logrus.Logger) Repository {
	return &sessionRepository{
		rdb: rdb,
		log: log,
		ttl: ttlFromEnv(),
	}
}

func ttlFromEnv() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS"))
	if err != nil || hours <= 0 {
		return defaultTTL
	}
	return time.Duration(hours) * time.Hour
}

func (r *sessionRepository) Get(ctx context.Context, id string) (entity.ChatSession, error) {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := r.rdb.Get(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return entity.ChatSession{}, chat.ErrSessionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to load chat session")
		return entity.ChatSession{}, chat.ErrSessionStore
	}

	var session entity.ChatSession
	if err := json.Unmarshal(raw, &session); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": id,
			"error":      err.Error(),
		}).Warn("Discarding unreadable chat session")
		return entity.ChatSession{}, chat.ErrSessionNotFound
	}

	return session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session entity.ChatSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	raw, err := json.Marshal(session)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to marshal chat session")
		return err
	}

	if err := r.rdb.Set(ctx, keyPrefix+session.ID, raw, r.ttl); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
			"error":      err.Error(),
		}).Error("Failed to save chat session")
		return chat.ErrSessionStore
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Delete(ctx, keyPrefix+id); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": id,
			"error":      err.Error(),
		}).Error("Failed to delete chat session")
		return chat.ErrSessionStore
	}
	return nil
}
