package solitaire

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/magefree/mage-goldfish/internal/game/history"
)

// Settings are the table rules that callers may tune.
type Settings struct {
	StartingLife int
	OpeningHand  int
	LandsPerTurn int
	HistoryDepth int
}

// DefaultSettings returns commander defaults.
func DefaultSettings() Settings {
	return Settings{
		StartingLife: 40,
		OpeningHand:  7,
		LandsPerTurn: 1,
		HistoryDepth: history.DefaultDepth,
	}
}

// RandSource is the randomness used for shuffles. *rand.Rand satisfies it.
type RandSource interface {
	Intn(n int) int
}

// IDGenerator returns a new, session-unique instance id.
type IDGenerator func() string

// Env carries everything a reduction needs besides the state itself.
type Env struct {
	Settings Settings
	Rand     RandSource
	NewID    IDGenerator
}

// RandomIDs derives uuid v4 instance ids from a seeded source, so a session
// replayed with the same seed reproduces the same ids.
func RandomIDs(seed int64) IDGenerator {
	src := rand.New(rand.NewSource(seed))
	return func() string {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}

// SequentialIDs returns ids "<prefix>-1", "<prefix>-2", ... for tests and
// fixtures.
func SequentialIDs(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
