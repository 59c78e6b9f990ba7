package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCooldown = time.Minute

// ResetThrottle allows one password-reset code per address per cooldown.
// Key format: reset:<lowercased email>
type ResetThrottle struct {
	client   *redis.Client
	cooldown time.Duration
}

// NewResetThrottle creates a ResetThrottle wrapping the given Redis client.
func NewResetThrottle(client *redis.Client, cooldown time.Duration) *ResetThrottle {
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &ResetThrottle{client: client, cooldown: cooldown}
}

// Allow claims the cooldown slot for email. It reports false while a
// previous claim is still live.
func (t *ResetThrottle) Allow(ctx context.Context, email string) (bool, error) {
	ok, err := t.client.SetNX(ctx, t.key(email), "1", t.cooldown).Result()
	if err != nil {
		return false, fmt.Errorf("reset throttle: %w", err)
	}
	return ok, nil
}

// Release drops the claim for email.
func (t *ResetThrottle) Release(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("reset throttle: %w", err)
	}
	return nil
}

func (t *ResetThrottle) key(email string) string {
	return "reset:" + strings.ToLower(strings.TrimSpace(email))
}
