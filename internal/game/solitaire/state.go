// Package solitaire implements the single-player goldfishing engine: a
// reducer over an immutable game state plus a dispatcher that owns undo
// history.
package solitaire

import (
	"maps"
	"slices"

	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"github.com/magefree/mage-goldfish/internal/game/rules"
)

// ZoneID names one of the six card containers.
type ZoneID string

const (
	ZoneLibrary     ZoneID = "library"
	ZoneHand        ZoneID = "hand"
	ZoneBattlefield ZoneID = "battlefield"
	ZoneGraveyard   ZoneID = "graveyard"
	ZoneExile       ZoneID = "exile"
	ZoneCommand     ZoneID = "command"
)

// AllZones lists every zone in display order.
var AllZones = []ZoneID{ZoneLibrary, ZoneHand, ZoneBattlefield, ZoneGraveyard, ZoneExile, ZoneCommand}

// Valid reports whether z names a known zone.
func (z ZoneID) Valid() bool {
	return slices.Contains(AllZones, z)
}

// Zones holds the ordered card lists. The tail of Library is its top.
type Zones struct {
	Library     []cards.Instance `json:"library"`
	Hand        []cards.Instance `json:"hand"`
	Battlefield []cards.Instance `json:"battlefield"`
	Graveyard   []cards.Instance `json:"graveyard"`
	Exile       []cards.Instance `json:"exile"`
	Command     []cards.Instance `json:"command"`
}

// Get returns the list for zone z. The result must not be modified.
func (z Zones) Get(id ZoneID) []cards.Instance {
	switch id {
	case ZoneLibrary:
		return z.Library
	case ZoneHand:
		return z.Hand
	case ZoneBattlefield:
		return z.Battlefield
	case ZoneGraveyard:
		return z.Graveyard
	case ZoneExile:
		return z.Exile
	case ZoneCommand:
		return z.Command
	default:
		return nil
	}
}

func (z *Zones) set(id ZoneID, list []cards.Instance) {
	switch id {
	case ZoneLibrary:
		z.Library = list
	case ZoneHand:
		z.Hand = list
	case ZoneBattlefield:
		z.Battlefield = list
	case ZoneGraveyard:
		z.Graveyard = list
	case ZoneExile:
		z.Exile = list
	case ZoneCommand:
		z.Command = list
	}
}

// Count returns the number of cards across every zone.
func (z Zones) Count() int {
	n := 0
	for _, id := range AllZones {
		n += len(z.Get(id))
	}
	return n
}

// PlayerCounters are the player's life and other tracked totals.
type PlayerCounters struct {
	Life            int            `json:"life"`
	Poison          int            `json:"poison"`
	Energy          int            `json:"energy"`
	CommanderDamage map[string]int `json:"commanderDamage"`
}

// UIState carries the transient message shown to the player.
type UIState struct {
	Error *string `json:"error"`
}

// GameState is the full renderable state tree. Operations never modify a
// GameState in place; they build a new one.
type GameState struct {
	Zones        Zones           `json:"zones"`
	ManaPool     mana.Pool       `json:"manaPool"`
	Turn         rules.TurnState `json:"turn"`
	Counters     PlayerCounters  `json:"counters"`
	CommanderTax map[string]int  `json:"commanderTax"`
	UI           UIState         `json:"ui"`
}

// NewGameState returns an empty game with the configured starting life.
func NewGameState(settings Settings) GameState {
	return GameState{
		Turn: rules.NewTurnState(),
		Counters: PlayerCounters{
			Life:            settings.StartingLife,
			CommanderDamage: map[string]int{},
		},
		CommanderTax: map[string]int{},
	}
}

// ErrorMessage returns the current UI error or "".
func (s GameState) ErrorMessage() string {
	if s.UI.Error == nil {
		return ""
	}
	return *s.UI.Error
}

func (s GameState) withError(msg string) GameState {
	s.UI.Error = &msg
	return s
}

func (s GameState) clearError() GameState {
	s.UI.Error = nil
	return s
}

// Clone returns a deep copy sharing no mutable storage with s.
func (s GameState) Clone() GameState {
	out := s
	for _, id := range AllZones {
		out.Zones.set(id, slices.Clone(s.Zones.Get(id)))
	}
	out.Counters.CommanderDamage = maps.Clone(s.Counters.CommanderDamage)
	out.CommanderTax = maps.Clone(s.CommanderTax)
	if s.UI.Error != nil {
		msg := *s.UI.Error
		out.UI.Error = &msg
	}
	return out
}

// FindCard returns the card with instanceID in zone.
func (s GameState) FindCard(zone ZoneID, instanceID string) (cards.Instance, bool) {
	list := s.Zones.Get(zone)
	if i := indexOf(list, instanceID); i >= 0 {
		return list[i], true
	}
	return cards.Instance{}, false
}

// Locate returns the zone that currently holds instanceID.
func (s GameState) Locate(instanceID string) (ZoneID, bool) {
	for _, id := range AllZones {
		if indexOf(s.Zones.Get(id), instanceID) >= 0 {
			return id, true
		}
	}
	return "", false
}

func indexOf(list []cards.Instance, instanceID string) int {
	return slices.IndexFunc(list, func(c cards.Instance) bool {
		return c.InstanceID == instanceID
	})
}

// The helpers below always allocate, so a list shared with a snapshot is
// never written through.

func removeAt(list []cards.Instance, i int) []cards.Instance {
	out := make([]cards.Instance, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

func insertAt(list []cards.Instance, i int, card cards.Instance) []cards.Instance {
	if i < 0 || i > len(list) {
		i = len(list)
	}
	out := make([]cards.Instance, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, card)
	return append(out, list[i:]...)
}

func replaceAt(list []cards.Instance, i int, card cards.Instance) []cards.Instance {
	out := slices.Clone(list)
	out[i] = card
	return out
}

func mapCards(list []cards.Instance, fn func(cards.Instance) cards.Instance) []cards.Instance {
	if list == nil {
		return nil
	}
	out := make([]cards.Instance, len(list))
	for i, c := range list {
		out[i] = fn(c)
	}
	return out
}
