// Package subnet contains pure functions for picking an unused IPv4 subnet
// for a dedicated application network. The candidate pool is a fixed,
// deterministic ordered list of /24 blocks so repeated runs against the same
// compose files always choose the same subnet.
package subnet

import (
	"errors"
	"fmt"
	"net/netip"
)

// =============================================================================
// Error Types
// =============================================================================

var (
	ErrInvalidBase   = errors.New("pool base must be an IPv4 /24 prefix")
	ErrInvalidSize   = errors.New("pool size out of range")
	ErrPoolExhausted = errors.New("no unused subnet left in the pool")
)

// =============================================================================
// Pool
// =============================================================================

// DefaultBase is the first candidate block.
const DefaultBase = "10.90.0.0/24"

// DefaultSize is the number of candidate blocks in the pool.
const DefaultSize = 64

// Pool is an ordered list of candidate subnets.
type Pool struct {
	candidates []string
}

// NewPool builds a pool of size consecutive /24 blocks starting at base,
// stepping the third octet (10.90.0.0/24, 10.90.1.0/24, ...).
func NewPool(base string, size int) (Pool, error) {
	prefix, err := netip.ParsePrefix(base)
	if err != nil || !prefix.Addr().Is4() || prefix.Bits() != 24 {
		return Pool{}, fmt.Errorf("%w: %q", ErrInvalidBase, base)
	}

	start := int(prefix.Addr().As4()[2])
	if size <= 0 || start+size > 256 {
		return Pool{}, fmt.Errorf("%w: %d blocks from %s", ErrInvalidSize, size, base)
	}

	octets := prefix.Addr().As4()
	candidates := make([]string, size)
	for i := 0; i < size; i++ {
		candidates[i] = fmt.Sprintf("%d.%d.%d.0/24", octets[0], octets[1], start+i)
	}
	return Pool{candidates: candidates}, nil
}

// DefaultPool returns the standard pool. Panics only on a programming error
// since the defaults are constant.
func DefaultPool() Pool {
	pool, err := NewPool(DefaultBase, DefaultSize)
	if err != nil {
		panic(err)
	}
	return pool
}

// Candidates returns the ordered candidate list.
func (p Pool) Candidates() []string {
	return append([]string(nil), p.candidates...)
}

// Pick returns the first candidate not present in used. Deterministic for a
// given used set. Returns ErrPoolExhausted when every candidate is taken.
func (p Pool) Pick(used map[string]struct{}) (string, error) {
	for _, c := range p.candidates {
		if _, taken := used[c]; !taken {
			return c, nil
		}
	}
	return "", ErrPoolExhausted
}
