package solitaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/mage-goldfish/internal/game/rules"
)

func TestNewEngineDefaults(t *testing.T) {
	e := NewEngine()
	state := e.State()

	assert.NotZero(t, e.Seed())
	assert.Equal(t, 40, state.Counters.Life)
	assert.Equal(t, rules.NewTurnState(), state.Turn)
	assert.Zero(t, state.Zones.Count())
	assert.Zero(t, e.HistoryLen())
}

func TestUndoRestoresPriorState(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(DrawCard{Count: intPtr(7)})
	before := e.State()

	hand := before.Zones.Hand
	e.Dispatch(MoveCard{CardID: hand[0].InstanceID, FromZone: ZoneHand, ToZone: ZoneGraveyard})
	e.Dispatch(SetLife{Amount: 33})
	e.Dispatch(ShuffleLibrary{})

	e.Dispatch(Undo{})
	e.Dispatch(Undo{})
	state := e.Dispatch(Undo{})
	assert.Equal(t, before, state)
}

func TestUndoHistoryIsBounded(t *testing.T) {
	e := loadedEngine(t)
	for i := 0; i < 25; i++ {
		e.Dispatch(DrawCard{})
	}
	require.Equal(t, 20, e.HistoryLen())

	var state GameState
	for i := 0; i < 20; i++ {
		state = e.Dispatch(Undo{})
	}
	assert.Zero(t, e.HistoryLen())
	assert.Len(t, state.Zones.Hand, 5)

	again := e.Dispatch(Undo{})
	assert.Equal(t, state, again)
}

func TestHistoryDepthFollowsSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.HistoryDepth = 3
	e := newTestEngine(t, WithSettings(settings))
	e.Dispatch(commanderDeck())
	for i := 0; i < 5; i++ {
		e.Dispatch(DrawCard{})
	}
	assert.Equal(t, 3, e.HistoryLen())
}

func TestRejectedActionKeepsHistory(t *testing.T) {
	e := loadedEngine(t)
	history := e.HistoryLen()

	state := e.Dispatch(SpendMana{Color: "u"})
	assert.Equal(t, "no u mana in pool", state.ErrorMessage())
	assert.Equal(t, history, e.HistoryLen())

	// The next successful action clears the message.
	state = e.Dispatch(DrawCard{})
	assert.Nil(t, state.UI.Error)
	assert.Equal(t, history+1, e.HistoryLen())
}

func TestUndoRestoresErrorVerbatim(t *testing.T) {
	e := loadedEngine(t)
	e.Dispatch(SpendMana{Color: "u"})
	e.Dispatch(DrawCard{})

	state := e.Dispatch(Undo{})
	assert.Equal(t, "no u mana in pool", state.ErrorMessage())
}

func TestStateIsACopy(t *testing.T) {
	e := loadedEngine(t)
	state := e.State()
	state.Zones.Library[0].Name = "Changed"
	state.CommanderTax["other"] = 9

	fresh := e.State()
	assert.NotEqual(t, "Changed", fresh.Zones.Library[0].Name)
	assert.NotContains(t, fresh.CommanderTax, "other")
}

type recordingObserver struct {
	actions []ActionType
	changed []bool
}

func (r *recordingObserver) Observe(action Action, result Result) {
	r.actions = append(r.actions, action.Type())
	r.changed = append(r.changed, result.Changed)
}

func TestObserverSeesEveryAction(t *testing.T) {
	obs := &recordingObserver{}
	e := newTestEngine(t, WithObserver(obs))

	e.Dispatch(commanderDeck())
	e.Dispatch(SpendMana{Color: "g"})
	e.Dispatch(Undo{})

	assert.Equal(t, []ActionType{ActionLoadDeck, ActionSpendMana, ActionUndo}, obs.actions)
	assert.Equal(t, []bool{true, false, true}, obs.changed)
}

func TestChecksumIgnoresUI(t *testing.T) {
	e := loadedEngine(t)
	clean := e.State()
	withError := e.Dispatch(SpendMana{Color: "w"})
	require.NotNil(t, withError.UI.Error)

	a, err := clean.Checksum()
	require.NoError(t, err)
	b, err := withError.Checksum()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	drawn, err := e.Dispatch(DrawCard{}).Checksum()
	require.NoError(t, err)
	assert.NotEqual(t, a, drawn)
}
