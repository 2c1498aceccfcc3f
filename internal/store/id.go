package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity id prefixes.
const (
	prefixAccount     = "acc"
	prefixTransaction = "txn"
	prefixDebt        = "debt"
	prefixGoal        = "goal"
	prefixCategory    = "cat"
	prefixPerson      = "person"
)

// newID builds an identifier from a semantic prefix, the current unix
// millisecond, and a random suffix. The random suffix keeps two ids minted
// in the same millisecond from colliding without a central counter.
func newID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix)
}
