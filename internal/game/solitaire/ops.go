package solitaire

import (
	"slices"

	"github.com/magefree/mage-goldfish/internal/game/cards"
	"github.com/magefree/mage-goldfish/internal/game/counters"
	"github.com/magefree/mage-goldfish/internal/game/mana"
	"github.com/magefree/mage-goldfish/internal/game/rules"
)

// loadDeck builds a fresh game: the mainboard shuffled face down into the
// library and the commanders face up in the command zone.
func loadDeck(load LoadDeck, env Env) Result {
	state := NewGameState(env.Settings)

	var library []cards.Instance
	for _, seed := range load.Mainboard {
		for i := 0; i < seed.Copies(); i++ {
			card := cards.NewInstance(seed, env.NewID())
			card.FaceDown = true
			library = append(library, card)
		}
	}

	var command []cards.Instance
	for _, seed := range load.Commander {
		for i := 0; i < seed.Copies(); i++ {
			card := cards.NewInstance(seed, env.NewID())
			card.IsCommander = true
			command = append(command, card)
			state.CommanderTax[card.InstanceID] = 0
		}
	}

	state.Zones.Library = shuffled(library, env.Rand)
	state.Zones.Command = command
	return changed(state, nil)
}

// shuffled returns a Fisher–Yates permutation of list in a new slice.
func shuffled(list []cards.Instance, rng RandSource) []cards.Instance {
	out := slices.Clone(list)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func shuffleLibrary(state GameState, env Env) Result {
	state.Zones.Library = shuffled(state.Zones.Library, env.Rand)
	return changed(state, nil)
}

// drawCards moves up to count cards from the top (tail) of the library to
// the hand, face up. It returns how many were drawn.
func drawCards(state GameState, count int) (GameState, int) {
	library := state.Zones.Library
	n := min(count, len(library))
	if n <= 0 {
		return state, 0
	}

	drawn := make([]cards.Instance, 0, n)
	for i := len(library) - 1; i >= len(library)-n; i-- {
		card := library[i]
		card.FaceDown = false
		drawn = append(drawn, card)
	}

	state.Zones.Library = slices.Clone(library[:len(library)-n])
	hand := make([]cards.Instance, 0, len(state.Zones.Hand)+n)
	hand = append(hand, state.Zones.Hand...)
	state.Zones.Hand = append(hand, drawn...)
	return state, n
}

func drawCard(state GameState, draw DrawCard) Result {
	count := 1
	if draw.Count != nil {
		count = *draw.Count
	}
	if count <= 0 {
		return unchanged(state)
	}

	next, drawn := drawCards(state, count)
	var err error
	if drawn < count {
		err = rules.NewRuleError(rules.KindLibraryEmpty,
			"library empty: drew %d of %d cards", drawn, count)
	}
	if drawn == 0 {
		return rejected(state, err)
	}
	return changed(next, err)
}

// tapCard toggles tapped. Summoning-sick creatures cannot be toggled and the
// attempt is dropped without an error message. Tapping a mana source on the
// battlefield adds one mana; untapping never takes it back.
func tapCard(state GameState, tap TapCard) Result {
	list := state.Zones.Get(tap.Zone)
	idx := indexOf(list, tap.CardID)
	if idx < 0 {
		return unchanged(state)
	}
	card := list[idx]
	if card.SummoningSickness && card.IsCreature() {
		return unchanged(state)
	}

	card.Tapped = !card.Tapped
	if card.Tapped && tap.Zone == ZoneBattlefield {
		if color, ok := rules.TapsForMana(card.TypeLine, card.ProducedMana); ok {
			state.ManaPool = state.ManaPool.Add(color, 1)
		}
	}
	state.Zones.set(tap.Zone, replaceAt(list, idx, card))
	return changed(state, nil)
}

// nextPhase advances the turn. The pool empties on every advance and the
// untap step readies the whole battlefield.
func nextPhase(state GameState) Result {
	state.Turn = state.Turn.Advance()
	state.ManaPool = mana.Pool{}
	if state.Turn.Phase == rules.PhaseUntap {
		state.Zones.Battlefield = mapCards(state.Zones.Battlefield, func(c cards.Instance) cards.Instance {
			c.Tapped = false
			c.SummoningSickness = false
			return c
		})
	}
	return changed(state, nil)
}

func untapAll(state GameState) Result {
	state.Zones.Battlefield = mapCards(state.Zones.Battlefield, func(c cards.Instance) cards.Instance {
		c.Tapped = false
		return c
	})
	return changed(state, nil)
}

func addMana(state GameState, add AddMana) Result {
	color, ok := mana.ParseColor(add.Color)
	if !ok {
		return unchanged(state)
	}
	state.ManaPool = state.ManaPool.Add(color, 1)
	return changed(state, nil)
}

func spendMana(state GameState, spend SpendMana) Result {
	color, ok := mana.ParseColor(spend.Color)
	if !ok {
		return unchanged(state)
	}
	pool, ok := state.ManaPool.SpendOne(color)
	if !ok {
		return rejected(state, rules.NewRuleError(rules.KindInsufficientMana,
			"no %s mana in pool", spend.Color))
	}
	state.ManaPool = pool
	return changed(state, nil)
}

func setLife(state GameState, set SetLife) Result {
	state.Counters.Life = set.Amount
	return changed(state, nil)
}

// toLibrary strips play state from a card headed back into the library.
func toLibrary(c cards.Instance) cards.Instance {
	c = c.Reset()
	c.FaceDown = true
	return c
}

// mulligan shuffles the hand into the library and draws a new opening hand.
// The turn counter is left alone.
func mulligan(state GameState, env Env) Result {
	library := slices.Clone(state.Zones.Library)
	for _, c := range state.Zones.Hand {
		library = append(library, toLibrary(c))
	}
	state.Zones.Hand = nil
	state.Zones.Library = shuffled(library, env.Rand)
	state, _ = drawCards(state, env.Settings.OpeningHand)
	state.Turn.LandsPlayed = 0
	return changed(state, nil)
}

// restartGame returns every card to where it started, shuffles and deals a
// new opening hand. Tokens cease to exist, commanders go back to the command
// zone and their tax drops to zero under the same instance ids.
func restartGame(state GameState, env Env) Result {
	fresh := NewGameState(env.Settings)

	library := mapCards(state.Zones.Library, toLibrary)
	var command []cards.Instance
	for _, c := range state.Zones.Command {
		command = append(command, c.Reset())
	}
	for _, zone := range []ZoneID{ZoneHand, ZoneBattlefield, ZoneGraveyard, ZoneExile} {
		for _, c := range state.Zones.Get(zone) {
			switch {
			case c.IsToken:
			case c.IsCommander:
				command = append(command, c.Reset())
			default:
				library = append(library, toLibrary(c))
			}
		}
	}

	for id := range state.CommanderTax {
		fresh.CommanderTax[id] = 0
	}
	for _, c := range command {
		if c.IsCommander {
			fresh.CommanderTax[c.InstanceID] = 0
		}
	}

	fresh.Zones.Command = command
	fresh.Zones.Library = shuffled(library, env.Rand)
	fresh, _ = drawCards(fresh, env.Settings.OpeningHand)
	return changed(fresh, nil)
}

func changeCounters(state GameState, change CounterChange, add bool) Result {
	ct, err := counters.ParseCounterType(change.CounterType)
	if err != nil {
		return rejected(state, rules.NewRuleError(rules.KindInvalidCounter, "%s", err.Error()))
	}

	list := state.Zones.Get(change.Zone)
	idx := indexOf(list, change.CardID)
	if idx < 0 {
		return unchanged(state)
	}
	amount := 1
	if change.Amount != nil {
		amount = *change.Amount
	}
	if amount <= 0 {
		return unchanged(state)
	}

	card := list[idx]
	if add {
		card.Counters = card.Counters.Add(ct, amount)
	} else {
		card.Counters = card.Counters.Remove(ct, amount)
	}
	state.Zones.set(change.Zone, replaceAt(list, idx, card))
	return changed(state, nil)
}

// createToken puts a new token onto the battlefield, untapped and face up.
// Creature tokens are summoning sick like any other new creature.
func createToken(state GameState, create CreateToken, env Env) Result {
	token := cards.NewInstance(create.TokenData, env.NewID())
	token.IsToken = true
	token.SummoningSickness = token.IsCreature()
	state.Zones.Battlefield = insertAt(state.Zones.Battlefield, -1, token)
	return changed(state, nil)
}
