// Package accountnumber generates external client account identifiers.
//
// Generation is split into pure candidate functions over an injected clock and
// random source, and a bounded retry loop owned by the caller, so the policy
// can be tested without a store. Uniqueness is ultimately enforced by the
// database constraint; a duplicate-key rejection at persistence time is a
// signal to retry with a higher-entropy candidate, not a fatal error.
package accountnumber

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// Prefix is the fixed leading segment of every account number.
const Prefix = "ACC"

// MaxAttempts bounds the primary-scheme retry loop.
const MaxAttempts = 10

// maxLength caps fallback candidates, which embed the full timestamp.
const maxLength = 20

// Rand is the subset of math/rand used by the generators, so tests can
// substitute a deterministic source.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a time-seeded random source suitable for production use.
// Candidates are not secrets; the database unique constraint is the guarantee.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate builds a primary-scheme candidate: the prefix, the last eight
// digits of the unix-millisecond timestamp, and four random digits.
func Generate(now time.Time, rng Rand) string {
	millis := strconv.FormatInt(now.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("%s%s%04d", Prefix, millis, rng.Intn(10000))
}

// GenerateFallback builds a second-scheme candidate used when the primary
// scheme exhausts its attempts: the prefix, the full unix-millisecond
// timestamp, the tail of the owning user's id, and three random digits,
// truncated to the maximum length. Fallback candidates are not re-checked for
// uniqueness before persisting.
func GenerateFallback(now time.Time, ownerID string, rng Rand) string {
	tail := ownerID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	candidate := fmt.Sprintf("%s%d%s%03d", Prefix, now.UnixMilli(), tail, rng.Intn(1000))
	if len(candidate) > maxLength {
		candidate = candidate[:maxLength]
	}
	return candidate
}

// GenerateRetry builds the candidate used after the store rejects a write with
// a duplicate-key error: the fallback scheme widened to four random digits.
func GenerateRetry(now time.Time, ownerID string, rng Rand) string {
	tail := ownerID
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	candidate := fmt.Sprintf("%s%d%s%04d", Prefix, now.UnixMilli(), tail, rng.Intn(10000))
	if len(candidate) > maxLength {
		candidate = candidate[:maxLength]
	}
	return candidate
}
