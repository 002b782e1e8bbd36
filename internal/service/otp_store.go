package service

import (
	"sync"
	"time"
)

// PendingReset is the stored code and expiry for one account's in-progress
// password reset.
type PendingReset struct {
	Code      string
	ExpiresAt time.Time
}

// OTPStore keys pending reset entries by account email. Implementations must
// be safe for concurrent use; a Put unconditionally replaces any prior entry
// for the same key.
type OTPStore interface {
	Put(email, code string, ttl time.Duration)
	Get(email string) (PendingReset, bool)
	Remove(email string)
}

// MemoryOTPStore is the process-local OTPStore used by a single-instance
// deployment. Entries live only for the lifetime of the process.
type MemoryOTPStore struct {
	mu      sync.RWMutex
	entries map[string]PendingReset
	now     func() time.Time
}

func NewMemoryOTPStore() *MemoryOTPStore {
	return &MemoryOTPStore{
		entries: make(map[string]PendingReset),
		now:     time.Now,
	}
}

func (s *MemoryOTPStore) Put(email, code string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = PendingReset{
		Code:      code,
		ExpiresAt: s.now().Add(ttl),
	}
}

func (s *MemoryOTPStore) Get(email string) (PendingReset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[email]
	return entry, ok
}

func (s *MemoryOTPStore) Remove(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}
