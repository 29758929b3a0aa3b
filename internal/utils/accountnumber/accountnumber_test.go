package accountnumber_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bankmgmt/bank_management_app/internal/utils/accountnumber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRand always returns the same value, to make candidates deterministic.
type fixedRand struct{ v int }

func (f fixedRand) Intn(n int) int { return f.v % n }

func TestGenerate_Format(t *testing.T) {
	now := time.UnixMilli(1712345678901)

	got := accountnumber.Generate(now, fixedRand{v: 7})

	// Prefix + last 8 digits of the millisecond timestamp + 4 zero-padded random digits.
	assert.Equal(t, "ACC456789010007", got)
	assert.True(t, strings.HasPrefix(got, accountnumber.Prefix))
	assert.Len(t, got, 15)
}

func TestGenerate_PadsRandomSegment(t *testing.T) {
	now := time.UnixMilli(1712345678901)

	got := accountnumber.Generate(now, fixedRand{v: 3})

	assert.True(t, strings.HasSuffix(got, "0003"))
}

func TestGenerate_RedrawChangesCandidate(t *testing.T) {
	now := time.UnixMilli(1712345678901)

	first := accountnumber.Generate(now, fixedRand{v: 1})
	second := accountnumber.Generate(now, fixedRand{v: 2})

	// Same instant, different random draw: only the random segment differs.
	assert.NotEqual(t, first, second)
	assert.Equal(t, first[:11], second[:11])
}

func TestGenerateFallback_TruncatesToMaxLength(t *testing.T) {
	now := time.UnixMilli(1712345678901)

	got := accountnumber.GenerateFallback(now, "user-abcdef123456", fixedRand{v: 42})

	require.LessOrEqual(t, len(got), 20)
	assert.True(t, strings.HasPrefix(got, accountnumber.Prefix))
	// Full 13-digit timestamp survives the truncation; the owner tail is what gets cut.
	assert.Contains(t, got, "1712345678901")
}

func TestGenerateFallback_UsesOwnerTail(t *testing.T) {
	// Short timestamps leave room for the owner tail and the random digits.
	now := time.UnixMilli(99)

	got := accountnumber.GenerateFallback(now, "owner-3456", fixedRand{v: 5})

	assert.Equal(t, "ACC993456005", got)
}

func TestGenerateFallback_ShortOwnerID(t *testing.T) {
	now := time.UnixMilli(99)

	got := accountnumber.GenerateFallback(now, "ab", fixedRand{v: 5})

	assert.Equal(t, "ACC99ab005", got)
}

func TestGenerateRetry_WiderRandomSegment(t *testing.T) {
	now := time.UnixMilli(99)

	got := accountnumber.GenerateRetry(now, "owner-3456", fixedRand{v: 5})

	assert.Equal(t, "ACC9934560005", got)
	assert.LessOrEqual(t, len(got), 20)
}

func TestNewRand_ProducesCandidates(t *testing.T) {
	rng := accountnumber.NewRand()
	now := time.Now()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[accountnumber.Generate(now, rng)] = struct{}{}
	}

	// 50 draws of a 4-digit segment collide occasionally, but not all of them.
	assert.Greater(t, len(seen), 1)
}
