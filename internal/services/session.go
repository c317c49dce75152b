package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/platewise/platewise-backend/internal/database"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for username->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// SessionStore resolves bearer tokens to logged-in usernames. Sessions are
// created on login and destroyed on logout; nothing about them is persisted
// in the account document.
type SessionStore interface {
	Create(ctx context.Context, username string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateUser(ctx context.Context, username string) error
}

// RedisSessions stores sessions in Redis with a 7-day expiry.
type RedisSessions struct{}

func NewRedisSessions() *RedisSessions {
	return &RedisSessions{}
}

// Create creates a new session for a user. Any existing session for the
// same user is invalidated first so the 7-day timer resets from this login.
func (s *RedisSessions) Create(ctx context.Context, username string) (string, error) {
	s.InvalidateUser(ctx, username)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := database.RedisClient.Set(ctx, SessionKeyPrefix+token, username, SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, UserSessionKeyPrefix+username, token, SessionDuration).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Validate checks if a session token is valid and returns the username.
// A successful validation slides the expiry of both keys forward by the full
// session duration, so active users are never logged out mid-use.
func (s *RedisSessions) Validate(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}

	username, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return "", false, nil
	}

	// Best effort; a failed refresh still leaves a valid session
	database.RedisClient.Expire(ctx, SessionKeyPrefix+token, SessionDuration)
	database.RedisClient.Expire(ctx, UserSessionKeyPrefix+username, SessionDuration)

	return username, true, nil
}

// Invalidate removes a session from Redis.
func (s *RedisSessions) Invalidate(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	username, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && username != "" {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+username)
	}

	return database.RedisClient.Del(ctx, SessionKeyPrefix+token).Err()
}

// InvalidateUser invalidates the active session for a user. Called on a new
// login and after a password change.
func (s *RedisSessions) InvalidateUser(ctx context.Context, username string) error {
	token, err := database.RedisClient.Get(ctx, UserSessionKeyPrefix+username).Result()
	if err == nil && token != "" {
		database.RedisClient.Del(ctx, SessionKeyPrefix+token)
	}

	return database.RedisClient.Del(ctx, UserSessionKeyPrefix+username).Err()
}
