package trust

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/repository"
)

// Transition is the result of one registered interaction.
type Transition struct {
	UserID           string
	OldLevel         Level
	NewLevel         Level
	LevelChanged     bool
	InteractionCount int
}

// Info describes a user's current trust state.
type Info struct {
	UserID              string
	Level               Level
	Label               string
	Description         string
	InteractionCount    int
	Policy              Policy
	MessagesToNextLevel int
	IsMaxLevel          bool
}

// Machine advances the per-user interaction counter and reports trust
// levels. Increments for one user are serialized; different users never
// wait on each other.
type Machine struct {
	counter repository.InteractionCounter
	cache   *cache.Registry
	logger  *slog.Logger
	locks   *keyedMutex
}

// NewMachine creates a Machine over counter. A nil logger discards output.
func NewMachine(counter repository.InteractionCounter, reg *cache.Registry, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Machine{
		counter: counter,
		cache:   reg,
		logger:  logger,
		locks:   newKeyedMutex(),
	}
}

func infoKey(userID string) string {
	return cache.Key(userID, "info")
}

// RegisterInteraction increments the counter and recomputes the level.
// Every cached read that embeds trust state for the user is invalidated
// before it returns.
func (m *Machine) RegisterInteraction(ctx context.Context, userID string) (Transition, error) {
	unlock := m.locks.lock(userID)
	defer unlock()

	count, err := m.counter.IncrementInteractionCount(ctx, userID)
	if err != nil {
		return Transition{}, fmt.Errorf("increment interaction count: %w", err)
	}
	if err := m.invalidate(userID); err != nil {
		return Transition{}, err
	}

	t := Transition{
		UserID:           userID,
		OldLevel:         LevelFor(count - 1),
		NewLevel:         LevelFor(count),
		InteractionCount: count,
	}
	t.LevelChanged = t.NewLevel != t.OldLevel
	if t.LevelChanged {
		m.logger.Info("trust level changed",
			"user_id", userID,
			"from", int(t.OldLevel),
			"to", int(t.NewLevel),
			"count", count,
		)
	}
	return t, nil
}

// dependents are the namespaces whose entries carry trust info or its
// policy: the prompt signal and the dashboard.
var dependents = []cache.Name{cache.ConversationSummaries, cache.Dashboard}

func (m *Machine) invalidate(userID string) error {
	if err := m.cache.Invalidate(cache.TrustLevel, infoKey(userID)); err != nil {
		return fmt.Errorf("invalidate trust info: %w", err)
	}
	for _, name := range dependents {
		if err := m.cache.InvalidateScope(name, userID); err != nil {
			return fmt.Errorf("invalidate %s: %w", name, err)
		}
	}
	return nil
}

// GetTrustInfo reads through the trust_level namespace.
func (m *Machine) GetTrustInfo(ctx context.Context, userID string) (Info, error) {
	// The compute is shared by concurrent callers, so one caller's
	// cancellation must not fail the others.
	readCtx := context.WithoutCancel(ctx)
	return cache.GetOrComputeAs(m.cache, cache.TrustLevel, infoKey(userID), func() (Info, error) {
		count, err := m.counter.GetInteractionCount(readCtx, userID)
		if err != nil {
			return Info{}, fmt.Errorf("get interaction count: %w", err)
		}
		return InfoFor(userID, count), nil
	})
}

// InfoFor derives trust info from a count without touching storage.
func InfoFor(userID string, count int) Info {
	l := LevelFor(count)
	p := PolicyFor(l)
	return Info{
		UserID:              userID,
		Level:               l,
		Label:               p.Label,
		Description:         p.Description,
		InteractionCount:    count,
		Policy:              p,
		MessagesToNextLevel: MessagesToNext(count),
		IsMaxLevel:          l == MaxLevel,
	}
}

// keyedMutex hands out one mutex per key and drops it when no goroutine
// holds or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
