// Package usage holds the narrow seam to the external per-user usage
// counter. The pipeline increments it exactly once per successful run;
// reading and enforcing the free-tier ceiling is the caller's policy.
package usage

import (
	"context"
	"sync"

	"github.com/tenderlens/tenderlens/internal/common"
)

// Recorder is the persistence collaborator's counter operation.
type Recorder interface {
	Increment(ctx context.Context, userID string) error
}

// Role is the identity collaborator's role flag. The core only uses it to
// decide whether the free-tier ceiling applies.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Quota implements the caller-owned free-tier check.
type Quota struct {
	MaxFreeUses int // <= 0 means unlimited
}

// NewQuota builds the free-tier check from configuration.
func NewQuota(cfg common.UsageConfig) Quota {
	return Quota{MaxFreeUses: cfg.MaxFreeUses}
}

// Allowed reports whether a user with the given role and prior use count may
// start another run. Admins bypass the ceiling.
func (q Quota) Allowed(role Role, used int) bool {
	if role == RoleAdmin || q.MaxFreeUses <= 0 {
		return true
	}
	return used < q.MaxFreeUses
}

// MemRecorder is an in-memory Recorder for tests and the dev harness.
type MemRecorder struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewMemRecorder() *MemRecorder {
	return &MemRecorder{counts: make(map[string]int)}
}

func (m *MemRecorder) Increment(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[userID]++
	return nil
}

// Count returns the recorded use count for a user.
func (m *MemRecorder) Count(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[userID]
}
