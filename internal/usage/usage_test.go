package usage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenderlens/tenderlens/internal/common"
)

func TestMemRecorderCounts(t *testing.T) {
	rec := NewMemRecorder()
	ctx := context.Background()

	require.NoError(t, rec.Increment(ctx, "alice"))
	require.NoError(t, rec.Increment(ctx, "alice"))
	require.NoError(t, rec.Increment(ctx, "bob"))

	assert.Equal(t, 2, rec.Count("alice"))
	assert.Equal(t, 1, rec.Count("bob"))
	assert.Equal(t, 0, rec.Count("carol"))
}

func TestQuotaAllowed(t *testing.T) {
	q := Quota{MaxFreeUses: 2}

	assert.True(t, q.Allowed(RoleUser, 0))
	assert.True(t, q.Allowed(RoleUser, 1))
	assert.False(t, q.Allowed(RoleUser, 2))
	assert.False(t, q.Allowed(RoleUser, 5))

	// Admins bypass the ceiling.
	assert.True(t, q.Allowed(RoleAdmin, 100))

	// Non-positive ceiling means unlimited.
	assert.True(t, Quota{}.Allowed(RoleUser, 100))
}

func TestNewQuotaFromConfig(t *testing.T) {
	q := NewQuota(common.UsageConfig{MaxFreeUses: 1})
	assert.True(t, q.Allowed(RoleUser, 0))
	assert.False(t, q.Allowed(RoleUser, 1))

	assert.True(t, NewQuota(common.UsageConfig{}).Allowed(RoleUser, 50))
}
