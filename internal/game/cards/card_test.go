package cards

import (
	"testing"

	"github.com/magefree/mage-goldfish/internal/game/counters"
	"github.com/stretchr/testify/assert"
)

func TestNewInstanceCopiesSeed(t *testing.T) {
	seed := Seed{
		ID:           "llanowar-elves",
		Name:         "Llanowar Elves",
		TypeLine:     "Creature — Elf Druid",
		ManaCost:     "{G}",
		Power:        "1",
		Toughness:    "1",
		ProducedMana: []string{"G"},
	}

	card := NewInstance(seed, "inst-1")
	assert.Equal(t, "llanowar-elves", card.ID)
	assert.Equal(t, "inst-1", card.InstanceID)
	assert.True(t, card.IsCreature())
	assert.False(t, card.IsLand())
	assert.False(t, card.Tapped)
	assert.False(t, card.FaceDown)
	assert.Nil(t, card.Position)
	assert.Equal(t, counters.Counters{}, card.Counters)
}

func TestEffectivePowerToughness(t *testing.T) {
	card := Instance{Power: "2", Toughness: "3"}
	card.Counters = card.Counters.Add(counters.CounterTypeP1P1, 2)

	assert.Equal(t, "4", card.EffectivePower())
	assert.Equal(t, "5", card.EffectiveToughness())
	assert.Equal(t, "2", card.Power, "printed power is never rewritten")

	tarmogoyf := Instance{Power: "*", Toughness: "1+*"}
	tarmogoyf.Counters = tarmogoyf.Counters.Add(counters.CounterTypeP1P1, 1)
	assert.Equal(t, "*", tarmogoyf.EffectivePower())
	assert.Equal(t, "1+*", tarmogoyf.EffectiveToughness())
}

func TestSeedCopies(t *testing.T) {
	assert.Equal(t, 1, Seed{}.Copies())
	assert.Equal(t, 4, Seed{Quantity: 4}.Copies())
}

func TestReset(t *testing.T) {
	card := Instance{
		Name:              "Grizzly Bears",
		Tapped:            true,
		FaceDown:          true,
		SummoningSickness: true,
		IsCommander:       true,
		Position:          &Position{X: 1, Y: 2},
		Counters:          counters.Counters{P1P1: 1, Other: 2},
	}

	reset := card.Reset()
	assert.Equal(t, Instance{Name: "Grizzly Bears", IsCommander: true}, reset)
	assert.True(t, card.Tapped, "reset returns a copy")
}
