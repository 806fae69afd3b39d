// Package cards defines the card instance model shared by every zone.
package cards

import (
	"github.com/magefree/mage-goldfish/internal/game/counters"
	"github.com/magefree/mage-goldfish/internal/game/rules"
)

// Seed is a card as it comes from deck storage.
type Seed struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	TypeLine     string   `json:"type_line"`
	ManaCost     string   `json:"mana_cost"`
	Power        string   `json:"power,omitempty"`
	Toughness    string   `json:"toughness,omitempty"`
	ProducedMana []string `json:"produced_mana,omitempty"`
	OracleText   string   `json:"oracle_text,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	// Quantity expands into that many copies. Zero means one.
	Quantity int `json:"quantity,omitempty"`
}

// Copies returns how many instances the seed stands for.
func (s Seed) Copies() int {
	if s.Quantity <= 0 {
		return 1
	}
	return s.Quantity
}

// Position is a free-placement coordinate on the battlefield.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Instance is one physical copy of a card in a session. Instances are
// treated as values: slices inside them are never mutated after creation.
type Instance struct {
	ID           string   `json:"id"`
	InstanceID   string   `json:"instanceId"`
	Name         string   `json:"name"`
	TypeLine     string   `json:"type_line"`
	ManaCost     string   `json:"mana_cost"`
	Power        string   `json:"power,omitempty"`
	Toughness    string   `json:"toughness,omitempty"`
	ProducedMana []string `json:"produced_mana,omitempty"`
	OracleText   string   `json:"oracle_text,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`

	Tapped            bool              `json:"tapped"`
	FaceDown          bool              `json:"faceDown"`
	SummoningSickness bool              `json:"summoningSickness"`
	IsCommander       bool              `json:"isCommander"`
	IsToken           bool              `json:"isToken"`
	Position          *Position         `json:"position"`
	Counters          counters.Counters `json:"counters"`
}

// NewInstance creates an untapped, face up copy of seed.
func NewInstance(seed Seed, instanceID string) Instance {
	return Instance{
		ID:           seed.ID,
		InstanceID:   instanceID,
		Name:         seed.Name,
		TypeLine:     seed.TypeLine,
		ManaCost:     seed.ManaCost,
		Power:        seed.Power,
		Toughness:    seed.Toughness,
		ProducedMana: seed.ProducedMana,
		OracleText:   seed.OracleText,
		Keywords:     seed.Keywords,
	}
}

// IsLand reports whether the card is a land.
func (c Instance) IsLand() bool {
	return rules.IsLand(c.TypeLine)
}

// IsCreature reports whether the card is a creature.
func (c Instance) IsCreature() bool {
	return rules.IsCreature(c.TypeLine)
}

// Playable returns the fields the timing rules look at.
func (c Instance) Playable() rules.Playable {
	return rules.Playable{
		Name:       c.Name,
		TypeLine:   c.TypeLine,
		OracleText: c.OracleText,
		Keywords:   c.Keywords,
	}
}

// EffectivePower is the printed power plus +1/+1 counters. Non-numeric
// values pass through.
func (c Instance) EffectivePower() string {
	return c.Counters.Boost(c.Power)
}

// EffectiveToughness is the printed toughness plus +1/+1 counters.
func (c Instance) EffectiveToughness() string {
	return c.Counters.Boost(c.Toughness)
}

// Reset clears every piece of transient play state.
func (c Instance) Reset() Instance {
	c.Tapped = false
	c.FaceDown = false
	c.SummoningSickness = false
	c.Position = nil
	c.Counters = counters.Counters{}
	return c
}
