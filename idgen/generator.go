// Package idgen assigns document identifiers.
//
// The default strategy mirrors what legacy databases contain: the decimal
// rendering of a random draw from a fixed 24-bit range, retried on collision
// against the IDs already stored. The retry bound is far above the document
// counts a constrained device holds.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

// Generator produces an identifier that is unique against the currently
// stored ID set. exists reports whether a candidate is already taken.
type Generator interface {
	Generate(exists func(id string) bool) (string, error)
}

// randomBits is the draw range of RandomGenerator: [0, 2^24).
const randomBits = 1 << 24

// maxAttempts bounds collision retries before giving up.
const maxAttempts = 64

// ErrExhausted is returned when every candidate in the attempt budget
// collided with an existing ID.
var ErrExhausted = fmt.Errorf("id generation: %d candidates all collided", maxAttempts)

// RandomGenerator draws decimal IDs from a fixed 24-bit range.
//
// Thread-safety: stateless (the shared math/rand source is concurrency
// safe), safe for concurrent use.
type RandomGenerator struct{}

// Generate draws candidates until one misses the existing ID set.
func (RandomGenerator) Generate(exists func(id string) bool) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := fmt.Sprintf("%d", rand.IntN(randomBits))
		if !exists(id) {
			return id, nil
		}
	}
	return "", ErrExhausted
}

// UUIDGenerator produces time-sortable UUIDv7 identifiers.
//
// An alternative for callers that prefer opaque, globally unique IDs over
// the compact legacy form. Collisions are practically impossible, but the
// existing-ID check is honored anyway so the store invariant never depends
// on which strategy is plugged in.
type UUIDGenerator struct{}

// Generate returns a new UUIDv7 as a hyphenated string.
func (UUIDGenerator) Generate(exists func(id string) bool) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		id := uuid.Must(uuid.NewV7()).String()
		if !exists(id) {
			return id, nil
		}
	}
	return "", ErrExhausted
}

// FixedGenerator returns predetermined IDs for deterministic tests and
// golden scenario runs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
// Panics when all IDs are consumed - a fail-fast signal that the test
// wrote more documents than it planned for.
func (g *FixedGenerator) Generate(exists func(id string) bool) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++

	if exists(id) {
		return "", fmt.Errorf("id generation: fixed id %q already stored", id)
	}
	return id, nil
}
