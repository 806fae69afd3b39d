package solitaire

import (
	"encoding/json"
	"fmt"

	"github.com/magefree/mage-goldfish/internal/game/cards"
)

// ActionType is the wire name of an action.
type ActionType string

const (
	ActionLoadDeck       ActionType = "LOAD_DECK"
	ActionDrawCard       ActionType = "DRAW_CARD"
	ActionMoveCard       ActionType = "MOVE_CARD"
	ActionTapCard        ActionType = "TAP_CARD"
	ActionNextPhase      ActionType = "NEXT_PHASE"
	ActionAddMana        ActionType = "ADD_MANA"
	ActionSpendMana      ActionType = "SPEND_MANA"
	ActionUntapAll       ActionType = "UNTAP_ALL"
	ActionShuffleLibrary ActionType = "SHUFFLE_LIBRARY"
	ActionSetLife        ActionType = "SET_LIFE"
	ActionUndo           ActionType = "UNDO"
	ActionMulligan       ActionType = "MULLIGAN"
	ActionRestartGame    ActionType = "RESTART_GAME"
	ActionAddCounter     ActionType = "ADD_COUNTER"
	ActionRemoveCounter  ActionType = "REMOVE_COUNTER"
	ActionCreateToken    ActionType = "CREATE_TOKEN"
)

// Action is one command accepted by the engine. The set is closed: only the
// types in this package implement it.
type Action interface {
	Type() ActionType
	isAction()
}

// LoadDeck starts a new game from a deck list.
type LoadDeck struct {
	Mainboard []cards.Seed `json:"mainboard"`
	Commander []cards.Seed `json:"commander"`
}

// DrawCard draws Count cards, one when Count is nil.
type DrawCard struct {
	Count *int `json:"count,omitempty"`
}

// MoveCard moves a card between (or within) zones.
type MoveCard struct {
	CardID   string          `json:"cardId"`
	FromZone ZoneID          `json:"fromZone"`
	ToZone   ZoneID          `json:"toZone"`
	Index    *int            `json:"index,omitempty"`
	Position *cards.Position `json:"position,omitempty"`
}

// TapCard toggles a card's tapped flag.
type TapCard struct {
	CardID string `json:"cardId"`
	Zone   ZoneID `json:"zone"`
}

// NextPhase advances the turn sequencer.
type NextPhase struct{}

// AddMana adds one mana of Color to the pool.
type AddMana struct {
	Color string `json:"color"`
}

// SpendMana removes one mana of Color from the pool.
type SpendMana struct {
	Color string `json:"color"`
}

// UntapAll untaps every battlefield card.
type UntapAll struct{}

// ShuffleLibrary shuffles the library.
type ShuffleLibrary struct{}

// SetLife overwrites the life total.
type SetLife struct {
	Amount int `json:"amount"`
}

// Undo restores the previous snapshot.
type Undo struct{}

// Mulligan shuffles the hand away and draws a new one.
type Mulligan struct{}

// RestartGame puts every card back and deals a fresh opening hand.
type RestartGame struct{}

// CounterChange identifies the counters touched by ADD_COUNTER and
// REMOVE_COUNTER.
type CounterChange struct {
	CardID      string `json:"cardId"`
	Zone        ZoneID `json:"zone"`
	CounterType string `json:"counterType"`
	Amount      *int   `json:"amount,omitempty"`
}

// AddCounter puts counters on a card.
type AddCounter struct {
	CounterChange
}

// RemoveCounter takes counters off a card.
type RemoveCounter struct {
	CounterChange
}

// CreateToken puts a new token onto the battlefield.
type CreateToken struct {
	TokenData cards.Seed `json:"tokenData"`
}

func (LoadDeck) Type() ActionType       { return ActionLoadDeck }
func (DrawCard) Type() ActionType       { return ActionDrawCard }
func (MoveCard) Type() ActionType       { return ActionMoveCard }
func (TapCard) Type() ActionType        { return ActionTapCard }
func (NextPhase) Type() ActionType      { return ActionNextPhase }
func (AddMana) Type() ActionType        { return ActionAddMana }
func (SpendMana) Type() ActionType      { return ActionSpendMana }
func (UntapAll) Type() ActionType       { return ActionUntapAll }
func (ShuffleLibrary) Type() ActionType { return ActionShuffleLibrary }
func (SetLife) Type() ActionType        { return ActionSetLife }
func (Undo) Type() ActionType           { return ActionUndo }
func (Mulligan) Type() ActionType       { return ActionMulligan }
func (RestartGame) Type() ActionType    { return ActionRestartGame }
func (AddCounter) Type() ActionType     { return ActionAddCounter }
func (RemoveCounter) Type() ActionType  { return ActionRemoveCounter }
func (CreateToken) Type() ActionType    { return ActionCreateToken }

func (LoadDeck) isAction()       {}
func (DrawCard) isAction()       {}
func (MoveCard) isAction()       {}
func (TapCard) isAction()        {}
func (NextPhase) isAction()      {}
func (AddMana) isAction()        {}
func (SpendMana) isAction()      {}
func (UntapAll) isAction()       {}
func (ShuffleLibrary) isAction() {}
func (SetLife) isAction()        {}
func (Undo) isAction()           {}
func (Mulligan) isAction()       {}
func (RestartGame) isAction()    {}
func (AddCounter) isAction()     {}
func (RemoveCounter) isAction()  {}
func (CreateToken) isAction()    {}

// Envelope is the wire form of an action: {"type": ..., "payload": {...}}.
type Envelope struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var decoders = map[ActionType]func(json.RawMessage) (Action, error){
	ActionLoadDeck:       decodePayload[LoadDeck],
	ActionDrawCard:       decodePayload[DrawCard],
	ActionMoveCard:       decodePayload[MoveCard],
	ActionTapCard:        decodePayload[TapCard],
	ActionNextPhase:      decodePayload[NextPhase],
	ActionAddMana:        decodePayload[AddMana],
	ActionSpendMana:      decodePayload[SpendMana],
	ActionUntapAll:       decodePayload[UntapAll],
	ActionShuffleLibrary: decodePayload[ShuffleLibrary],
	ActionSetLife:        decodePayload[SetLife],
	ActionUndo:           decodePayload[Undo],
	ActionMulligan:       decodePayload[Mulligan],
	ActionRestartGame:    decodePayload[RestartGame],
	ActionAddCounter:     decodePayload[AddCounter],
	ActionRemoveCounter:  decodePayload[RemoveCounter],
	ActionCreateToken:    decodePayload[CreateToken],
}

func decodePayload[T Action](payload json.RawMessage) (Action, error) {
	var action T
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &action); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", action.Type(), err)
		}
	}
	return action, nil
}

// DecodeEnvelope turns an envelope into a typed action.
func DecodeEnvelope(env Envelope) (Action, error) {
	decode, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown action type %q", env.Type)
	}
	return decode(env.Payload)
}

// DecodeAction parses a wire-encoded action.
func DecodeAction(data []byte) (Action, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode action envelope: %w", err)
	}
	return DecodeEnvelope(env)
}

// EncodeAction renders an action in its wire form.
func EncodeAction(action Action) ([]byte, error) {
	payload, err := json.Marshal(action)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", action.Type(), err)
	}
	return json.Marshal(Envelope{Type: action.Type(), Payload: payload})
}
