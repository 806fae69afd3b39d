package solitaire

// Result is the outcome of one reduction. Changed reports whether State
// differs from the input and should be recorded in history. Err carries a
// rule rejection or a partial-success warning, and may be set either way.
type Result struct {
	State   GameState
	Changed bool
	Err     error
}

func unchanged(state GameState) Result {
	return Result{State: state}
}

func rejected(state GameState, err error) Result {
	return Result{State: state, Err: err}
}

func changed(state GameState, err error) Result {
	return Result{State: state, Changed: true, Err: err}
}

// Reduce applies action to state. It never modifies state or anything it
// shares; the only side effects are draws from env.Rand and env.NewID.
// Undo is history bookkeeping and is left to the Engine.
func Reduce(state GameState, action Action, env Env) Result {
	switch a := action.(type) {
	case LoadDeck:
		return loadDeck(a, env)
	case DrawCard:
		return drawCard(state, a)
	case MoveCard:
		return moveCard(state, a, env)
	case TapCard:
		return tapCard(state, a)
	case NextPhase:
		return nextPhase(state)
	case AddMana:
		return addMana(state, a)
	case SpendMana:
		return spendMana(state, a)
	case UntapAll:
		return untapAll(state)
	case ShuffleLibrary:
		return shuffleLibrary(state, env)
	case SetLife:
		return setLife(state, a)
	case Mulligan:
		return mulligan(state, env)
	case RestartGame:
		return restartGame(state, env)
	case AddCounter:
		return changeCounters(state, a.CounterChange, true)
	case RemoveCounter:
		return changeCounters(state, a.CounterChange, false)
	case CreateToken:
		return createToken(state, a, env)
	default:
		return unchanged(state)
	}
}
