package services

import (
	"context"
	"fmt"
	"time"

	"github.com/platewise/platewise-backend/internal/database"
)

const (
	// PlanKeyPrefix is the Redis key prefix for recently generated plans
	PlanKeyPrefix = "plan:"
	// PlanTTL bounds how long after generation feedback can still be attached
	PlanTTL = 24 * time.Hour
)

// PlanStore keeps recently generated plan texts keyed by plan ID, so the
// feedback endpoint can attach feedback to the exact text the user was shown
// instead of trusting the client to echo the plan back.
type PlanStore interface {
	Put(ctx context.Context, username, planID, planText string) error
	Get(ctx context.Context, username, planID string) (string, error)
}

// RedisPlans stores recent plans in Redis with a bounded TTL.
type RedisPlans struct{}

func NewRedisPlans() *RedisPlans {
	return &RedisPlans{}
}

func planKey(username, planID string) string {
	return fmt.Sprintf("%s%s:%s", PlanKeyPrefix, username, planID)
}

func (p *RedisPlans) Put(ctx context.Context, username, planID, planText string) error {
	return database.RedisClient.Set(ctx, planKey(username, planID), planText, PlanTTL).Err()
}

// Get returns the stored plan text, or an error when the plan ID is unknown,
// belongs to another user, or has expired.
func (p *RedisPlans) Get(ctx context.Context, username, planID string) (string, error) {
	text, err := database.RedisClient.Get(ctx, planKey(username, planID)).Result()
	if err != nil {
		return "", fmt.Errorf("plan %s not found: %w", planID, err)
	}
	return text, nil
}
