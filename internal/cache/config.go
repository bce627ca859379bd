package cache

import (
	"fmt"
	"strings"
	"time"
)

// Name identifies a cache namespace.
type Name string

const (
	UserProfile           Name = "user_profile"
	ActiveHabits          Name = "active_habits"
	TrustLevel            Name = "trust_level"
	ConversationSummaries Name = "conversation_summaries"
	Correlations          Name = "correlations"
	Cycles                Name = "cycles"
	Dashboard             Name = "dashboard"
)

// NamespaceConfig bounds one namespace.
type NamespaceConfig struct {
	MaxSize int
	TTL     time.Duration
}

// DefaultNamespaces is the built-in namespace table. Every value can be
// overridden through configuration.
func DefaultNamespaces() map[Name]NamespaceConfig {
	return map[Name]NamespaceConfig{
		UserProfile:           {MaxSize: 1000, TTL: 300 * time.Second},
		ActiveHabits:          {MaxSize: 500, TTL: 60 * time.Second},
		TrustLevel:            {MaxSize: 1000, TTL: 600 * time.Second},
		ConversationSummaries: {MaxSize: 100, TTL: 900 * time.Second},
		Correlations:          {MaxSize: 100, TTL: 1800 * time.Second},
		Cycles:                {MaxSize: 100, TTL: 1800 * time.Second},
		Dashboard:             {MaxSize: 100, TTL: 120 * time.Second},
	}
}

func (c NamespaceConfig) validate(name Name) error {
	if c.MaxSize <= 0 {
		return fmt.Errorf("namespace %s: max size must be positive, got %d", name, c.MaxSize)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("namespace %s: ttl must be positive, got %s", name, c.TTL)
	}
	return nil
}

const keySep = ":"

// Key builds a user-scoped cache key. The user id is the scope that
// InvalidateScope and InvalidateUser match on.
func Key(userID string, parts ...string) string {
	if len(parts) == 0 {
		return userID
	}
	return userID + keySep + strings.Join(parts, keySep)
}

func scopeOf(key string) string {
	if i := strings.Index(key, keySep); i >= 0 {
		return key[:i]
	}
	return key
}
