package security

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobboard-web/pkg/logger"
	"go-jobboard-web/pkg/redis"

	goredis "github.com/redis/go-redis/v9"
)

// LoginTrackerConfig holds configuration for login tracking
type LoginTrackerConfig struct {
	MaxAttempts   int           // failed attempts before a block
	AttemptWindow time.Duration // how long failures are counted
	BlockDuration time.Duration
}

// DefaultLoginTrackerConfig returns sensible defaults
func DefaultLoginTrackerConfig() LoginTrackerConfig {
	return LoginTrackerConfig{
		MaxAttempts:   5,
		AttemptWindow: 15 * time.Minute,
		BlockDuration: 15 * time.Minute,
	}
}

// LoginTracker counts failed company logins per email and blocks the email
// once MaxAttempts is reached. Without Redis it tracks nothing and never
// blocks.
type LoginTracker struct {
	config LoginTrackerConfig
	client func() *goredis.Client
}

// NewLoginTracker creates a tracker backed by the shared Redis client.
func NewLoginTracker(config LoginTrackerConfig) *LoginTracker {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = DefaultLoginTrackerConfig().MaxAttempts
	}
	return &LoginTracker{config: config, client: redis.Client}
}

// Redis key patterns
const (
	failLoginPrefix    = "fail:login:company:"
	blockedLoginPrefix = "blocked:login:company:"
)

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: current count after increment
const incrWithTTLScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
return count
`

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlocked reports whether logins for email are currently refused.
func (lt *LoginTracker) IsBlocked(ctx context.Context, email string) (bool, error) {
	client := lt.client()
	if client == nil || email == "" {
		return false, nil
	}
	exists, err := client.Exists(ctx, blockedLoginPrefix+normalizeEmail(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check login block: %w", err)
	}
	return exists > 0, nil
}

// RecordFailure counts one failed login and blocks the email when the
// threshold is reached. Returns whether the email is now blocked.
func (lt *LoginTracker) RecordFailure(ctx context.Context, email, ip string) (bool, error) {
	client := lt.client()
	if client == nil || email == "" {
		return false, nil
	}
	email = normalizeEmail(email)

	count, err := lt.atomicIncrement(ctx, client, failLoginPrefix+email, int(lt.config.AttemptWindow.Seconds()))
	if err != nil {
		return false, fmt.Errorf("failed to increment login failures: %w", err)
	}

	logger.Log.WarnContext(ctx, "Company login failed", "email", email, "ip", ip, "attempts", count)

	if count < lt.config.MaxAttempts {
		return false, nil
	}
	if err := client.Set(ctx, blockedLoginPrefix+email, "1", lt.config.BlockDuration).Err(); err != nil {
		return false, fmt.Errorf("failed to set login block: %w", err)
	}
	logger.Log.WarnContext(ctx, "Company login blocked",
		"email", email, "ip", ip, "block_minutes", int(lt.config.BlockDuration.Minutes()))
	return true, nil
}

// atomicIncrement performs an atomic increment with TTL using Lua script
func (lt *LoginTracker) atomicIncrement(ctx context.Context, client *goredis.Client, key string, ttlSeconds int) (int, error) {
	result, err := client.Eval(ctx, incrWithTTLScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, err
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("unexpected result type from Lua script")
	}
	return int(count), nil
}

// Clear forgets failures after a successful login.
func (lt *LoginTracker) Clear(ctx context.Context, email string) error {
	client := lt.client()
	if client == nil || email == "" {
		return nil
	}
	if err := client.Del(ctx, failLoginPrefix+normalizeEmail(email)).Err(); err != nil {
		return fmt.Errorf("failed to clear login failures: %w", err)
	}
	return nil
}
