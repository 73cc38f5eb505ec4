package loginattempt

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// retentionGrace keeps consumed and expired attempts in the cache beyond
// their logical TTL so that a late or replayed callback is reported as
// expired/replayed rather than unknown. Attempts older than TTL+grace fall
// out of the cache entirely and report as unknown.
const retentionGrace = 10 * time.Minute

// InMemoryRepo is a thread-safe in-memory implementation of the Repo
// interface backed by a TTL cache. Purging is handled by the cache janitor;
// Validate enforces the attempt TTL itself regardless of purge timing.
type InMemoryRepo struct {
	mu          sync.Mutex
	cache       *ttlcache.Cache[string, *LoginAttempt]
	ttl         time.Duration
	tokenLength int
}

// NewInMemoryRepo creates a new in-memory login attempt repository.
// tokenLength is in bytes; 32 bytes gives 256 bits of entropy.
func NewInMemoryRepo(ttl time.Duration, tokenLength int) *InMemoryRepo {
	cache := ttlcache.New(
		ttlcache.WithTTL[string, *LoginAttempt](ttl+retentionGrace),
		ttlcache.WithDisableTouchOnHit[string, *LoginAttempt](),
	)
	go cache.Start()

	return &InMemoryRepo{
		cache:       cache,
		ttl:         ttl,
		tokenLength: tokenLength,
	}
}

func (r *InMemoryRepo) Issue() (*LoginAttempt, error) {
	token, err := randomToken(r.tokenLength)
	if err != nil {
		return nil, fmt.Errorf("[loginattempt Issue] state token: %w", err)
	}
	nonce, err := randomToken(r.tokenLength)
	if err != nil {
		return nil, fmt.Errorf("[loginattempt Issue] nonce: %w", err)
	}

	now := time.Now()
	attempt := &LoginAttempt{
		Token:     token,
		Nonce:     nonce,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(token, attempt, ttlcache.DefaultTTL)

	return copyAttempt(attempt), nil
}

func (r *InMemoryRepo) Validate(state string) (*LoginAttempt, error) {
	if state == "" {
		return nil, UnknownStateErr
	}

	// Check-and-mark must be atomic: two concurrent callbacks carrying the
	// same state token must not both pass validation.
	r.mu.Lock()
	defer r.mu.Unlock()

	item := r.cache.Get(state)
	if item == nil {
		return nil, UnknownStateErr
	}

	attempt := item.Value()
	if attempt.Consumed {
		return nil, ReplayedStateErr
	}
	if time.Now().After(attempt.ExpiresAt) {
		return nil, ExpiredStateErr
	}

	attempt.Consumed = true
	return copyAttempt(attempt), nil
}

// Close stops the cache janitor.
func (r *InMemoryRepo) Close() {
	r.cache.Stop()
}

// copyAttempt prevents external modifications to the stored attempt.
func copyAttempt(a *LoginAttempt) *LoginAttempt {
	copied := *a
	return &copied
}

func randomToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
