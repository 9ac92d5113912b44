package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"docuseek/internal/config"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionService issues opaque bearer tokens and resolves them back to user
// IDs. There is no process-wide current user; every request carries its token.
type SessionService interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Revoke(ctx context.Context, token string) error
}

type sessionService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionService(cfg config.RedisConfig) SessionService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &sessionService{
		client: client,
		ttl:    cfg.SessionTTL,
	}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create implements SessionService.
func (s *sessionService) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token := uuid.New().String()

	if err := s.client.Set(ctx, sessionKey(token), userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return token, nil
}

// Resolve implements SessionService.
func (s *sessionService) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	value, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt session value: %w", err)
	}

	return userID, nil
}

// Revoke implements SessionService.
func (s *sessionService) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
