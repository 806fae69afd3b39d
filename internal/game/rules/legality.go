package rules

import (
	"regexp"
	"strings"
)

// flashPattern matches a Flash keyword line in oracle text.
var flashPattern = regexp.MustCompile(`(?mi)^\s*flash\b`)

// IsLand reports whether a type line describes a land.
func IsLand(typeLine string) bool {
	return strings.Contains(typeLine, "Land")
}

// IsCreature reports whether a type line describes a creature.
func IsCreature(typeLine string) bool {
	return strings.Contains(typeLine, "Creature")
}

// IsInstant reports whether a type line describes an instant.
func IsInstant(typeLine string) bool {
	return strings.Contains(typeLine, "Instant")
}

// HasFlash reports whether the card has the Flash keyword.
func HasFlash(keywords []string, oracleText string) bool {
	for _, kw := range keywords {
		if strings.EqualFold(strings.TrimSpace(kw), "flash") {
			return true
		}
	}
	return flashPattern.MatchString(oracleText)
}

// Playable is the card information needed for timing checks.
type Playable struct {
	Name       string
	TypeLine   string
	OracleText string
	Keywords   []string
}

// CheckTiming rejects sorcery-speed plays outside the main phases. Instants
// and cards with Flash may be played at any time.
func CheckTiming(card Playable, phase Phase) error {
	if IsInstant(card.TypeLine) || HasFlash(card.Keywords, card.OracleText) {
		return nil
	}
	if phase.IsMain() {
		return nil
	}
	return NewRuleError(KindIllegalTiming,
		"%s can only be played during a main phase (current phase: %s)", card.Name, phase)
}

// CheckLandDrop rejects a land play once the per-turn limit is reached.
func CheckLandDrop(name string, landsPlayed, limit int) error {
	if landsPlayed < limit {
		return nil
	}
	return NewRuleError(KindLandLimitExceeded,
		"cannot play %s: you may only play one land per turn", name)
}
