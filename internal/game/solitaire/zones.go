package solitaire

import (
	"maps"

	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"github.com/magefree/mage-goldfish/internal/game/rules"
)

// isPlay reports whether a move puts a card onto the battlefield from hand
// or the command zone, which is when the play rules apply.
func isPlay(from, to ZoneID) bool {
	return to == ZoneBattlefield && (from == ZoneHand || from == ZoneCommand)
}

// moveCard is the central zone-change path. A card missing from the source
// zone is a silent no-op. Plays are checked for timing, the land drop limit
// and mana before the card moves.
func moveCard(state GameState, move MoveCard, env Env) Result {
	if !move.FromZone.Valid() || !move.ToZone.Valid() {
		return unchanged(state)
	}
	source := state.Zones.Get(move.FromZone)
	idx := indexOf(source, move.CardID)
	if idx < 0 {
		return unchanged(state)
	}
	card := source[idx]
	next := state

	if isPlay(move.FromZone, move.ToZone) {
		if err := rules.CheckTiming(card.Playable(), state.Turn.Phase); err != nil {
			return rejected(state, err)
		}

		if card.IsLand() {
			if err := rules.CheckLandDrop(card.Name, state.Turn.LandsPlayed, env.Settings.LandsPerTurn); err != nil {
				return rejected(state, err)
			}
			next.Turn.LandsPlayed++
		} else {
			paid, err := castCost(state, card, move.FromZone)
			if err != nil {
				return rejected(state, err)
			}
			next = paid
		}
	}

	entering := move.ToZone == ZoneBattlefield && move.FromZone != ZoneBattlefield
	card.FaceDown = move.ToZone == ZoneLibrary
	switch {
	case move.ToZone != ZoneBattlefield:
		card.Position = nil
	case move.Position != nil:
		pos := *move.Position
		card.Position = &pos
	case entering:
		card.Position = nil
	}
	if entering && card.IsCreature() {
		card.SummoningSickness = true
	}

	next.Zones.set(move.FromZone, removeAt(source, idx))
	index := -1
	if move.Index != nil {
		index = *move.Index
	}
	next.Zones.set(move.ToZone, insertAt(next.Zones.Get(move.ToZone), index, card))

	return changed(next, nil)
}

// castCost pays for a non-land play. Commanders cast from the command zone
// pay {2} more for every previous cast and have their tax bumped.
func castCost(state GameState, card cards.Instance, from ZoneID) (GameState, error) {
	taxed := from == ZoneCommand && card.IsCommander
	costStr := card.ManaCost
	if taxed {
		costStr = mana.WithGeneric(costStr, 2*state.CommanderTax[card.InstanceID])
	}
	cost := mana.ParseCost(costStr)

	pool, err := mana.Spend(state.ManaPool, cost)
	if err != nil {
		return state, rules.NewRuleError(rules.KindInsufficientMana,
			"not enough mana to cast %s: %s required", card.Name, cost)
	}

	state.ManaPool = pool
	if taxed {
		tax := maps.Clone(state.CommanderTax)
		if tax == nil {
			tax = map[string]int{}
		}
		tax[card.InstanceID]++
		state.CommanderTax = tax
	}
	return state, nil
}
