package subnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Pool Tests
// =============================================================================

func TestNewPool_Candidates(t *testing.T) {
	pool, err := NewPool("10.90.0.0/24", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.90.0.0/24", "10.90.1.0/24", "10.90.2.0/24"}, pool.Candidates())
}

func TestNewPool_NonZeroStart(t *testing.T) {
	pool, err := NewPool("172.20.40.0/24", 2)
	require.NoError(t, err)

	assert.Equal(t, []string{"172.20.40.0/24", "172.20.41.0/24"}, pool.Candidates())
}

func TestNewPool_InvalidBase(t *testing.T) {
	for _, base := range []string{"", "not-a-cidr", "10.90.0.0/16", "fd00::/24", "10.90.0.1"} {
		_, err := NewPool(base, 4)
		assert.ErrorIs(t, err, ErrInvalidBase, "base %q", base)
	}
}

func TestNewPool_InvalidSize(t *testing.T) {
	_, err := NewPool("10.90.0.0/24", 0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewPool("10.90.255.0/24", 2)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

// =============================================================================
// Pick Tests
// =============================================================================

func TestPick_EmptyUsedReturnsFirst(t *testing.T) {
	pool := DefaultPool()

	got, err := pool.Pick(nil)
	require.NoError(t, err)
	assert.Equal(t, "10.90.0.0/24", got)
}

func TestPick_SkipsUsed(t *testing.T) {
	pool, err := NewPool("10.90.0.0/24", 4)
	require.NoError(t, err)

	used := map[string]struct{}{
		"10.90.0.0/24": {},
		"10.90.1.0/24": {},
	}

	got, err := pool.Pick(used)
	require.NoError(t, err)
	assert.Equal(t, "10.90.2.0/24", got)
}

func TestPick_Deterministic(t *testing.T) {
	pool := DefaultPool()
	used := map[string]struct{}{"10.90.0.0/24": {}}

	first, err := pool.Pick(used)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := pool.Pick(used)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPick_Exhausted(t *testing.T) {
	pool, err := NewPool("10.90.0.0/24", 2)
	require.NoError(t, err)

	used := map[string]struct{}{
		"10.90.0.0/24": {},
		"10.90.1.0/24": {},
	}

	_, err = pool.Pick(used)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}
