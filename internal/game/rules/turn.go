package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Phase is one step of the simplified solitaire turn.
type Phase int

const (
	PhaseUntap Phase = iota
	PhaseUpkeep
	PhaseDraw
	PhaseMain1
	PhaseCombat
	PhaseMain2
	PhaseEnd
)

// phaseCount is the length of the turn cycle.
const phaseCount = int(PhaseEnd) + 1

var phaseNames = map[Phase]string{
	PhaseUntap:  "Untap",
	PhaseUpkeep: "Upkeep",
	PhaseDraw:   "Draw",
	PhaseMain1:  "Main1",
	PhaseCombat: "Combat",
	PhaseMain2:  "Main2",
	PhaseEnd:    "End",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// ParsePhase resolves a phase name case-insensitively.
func ParsePhase(name string) (Phase, error) {
	for p, n := range phaseNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", name)
}

// Next returns the following phase and whether the cycle wrapped past End.
func (p Phase) Next() (Phase, bool) {
	next := (int(p) + 1) % phaseCount
	return Phase(next), next == 0
}

// IsMain reports whether sorcery-speed plays are allowed in this phase.
func (p Phase) IsMain() bool {
	return p == PhaseMain1 || p == PhaseMain2
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParsePhase(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// TurnState tracks turn progression for a single player.
type TurnState struct {
	Count       int   `json:"count"`
	Phase       Phase `json:"phase"`
	LandsPlayed int   `json:"landsPlayed"`
}

// NewTurnState returns the state of a fresh game: turn 1, untap step.
func NewTurnState() TurnState {
	return TurnState{Count: 1, Phase: PhaseUntap}
}

// Advance moves to the next phase. Wrapping past End starts a new turn and
// resets the land drop counter.
func (t TurnState) Advance() TurnState {
	next, wrapped := t.Phase.Next()
	t.Phase = next
	if wrapped {
		t.Count++
		t.LandsPlayed = 0
	}
	return t
}
