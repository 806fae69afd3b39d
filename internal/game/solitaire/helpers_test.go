package solitaire

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/rules"
)

var (
	forest = cards.Seed{
		ID:           "forest",
		Name:         "Forest",
		TypeLine:     "Basic Land — Forest",
		ProducedMana: []string{"G"},
	}
	bears = cards.Seed{
		ID:        "grizzly-bears",
		Name:      "Grizzly Bears",
		TypeLine:  "Creature — Bear",
		ManaCost:  "{1}{G}",
		Power:     "2",
		Toughness: "2",
	}
	giantGrowth = cards.Seed{
		ID:         "giant-growth",
		Name:       "Giant Growth",
		TypeLine:   "Instant",
		ManaCost:   "{G}",
		OracleText: "Target creature gets +3/+3 until end of turn.",
	}
	omnath = cards.Seed{
		ID:        "omnath",
		Name:      "Omnath, Locus of Mana",
		TypeLine:  "Legendary Creature — Elemental",
		ManaCost:  "{2}{G}",
		Power:     "1",
		Toughness: "1",
	}
)

// commanderDeck is a 99 card mainboard plus one commander.
func commanderDeck() LoadDeck {
	f, b, g := forest, bears, giantGrowth
	f.Quantity = 40
	b.Quantity = 30
	g.Quantity = 29
	return LoadDeck{
		Mainboard: []cards.Seed{f, b, g},
		Commander: []cards.Seed{omnath},
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithLogger(zaptest.NewLogger(t)),
		WithSeed(42),
		WithIDGenerator(SequentialIDs("card")),
	}
	return NewEngine(append(base, opts...)...)
}

func loadedEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t)
	e.Dispatch(commanderDeck())
	return e
}

func intPtr(n int) *int { return &n }

// fetch moves the first library card called name into zone to.
func fetch(t *testing.T, e *Engine, name string, to ZoneID) cards.Instance {
	t.Helper()
	for _, c := range e.State().Zones.Library {
		if c.Name != name {
			continue
		}
		state := e.Dispatch(MoveCard{CardID: c.InstanceID, FromZone: ZoneLibrary, ToZone: to})
		got, ok := state.FindCard(to, c.InstanceID)
		require.True(t, ok, "%s did not reach %s", name, to)
		return got
	}
	t.Fatalf("no %s left in library", name)
	return cards.Instance{}
}

func advanceTo(e *Engine, phase rules.Phase) GameState {
	state := e.State()
	for state.Turn.Phase != phase {
		state = e.Dispatch(NextPhase{})
	}
	return state
}

func allInstanceIDs(state GameState) []string {
	var ids []string
	for _, zone := range AllZones {
		for _, c := range state.Zones.Get(zone) {
			ids = append(ids, c.InstanceID)
		}
	}
	return ids
}
