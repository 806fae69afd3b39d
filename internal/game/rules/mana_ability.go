package rules

import (
	"strings"

	"github.com/magefree/mage-goldfish/internal/game/mana"
)

// basicLandColors maps basic land types to the mana they tap for.
var basicLandColors = []struct {
	subtype string
	color   mana.Color
}{
	{"Plains", mana.White},
	{"Island", mana.Blue},
	{"Swamp", mana.Black},
	{"Mountain", mana.Red},
	{"Forest", mana.Green},
	{"Wastes", mana.Colorless},
}

// TapsForMana reports whether tapping a permanent adds mana and, if so, the
// single color it adds. The first listed produced mana wins; lands without
// one fall back to their basic land type and then to colorless.
func TapsForMana(typeLine string, producedMana []string) (mana.Color, bool) {
	for _, symbol := range producedMana {
		if color, ok := mana.ParseColor(symbol); ok {
			return color, true
		}
	}
	if !IsLand(typeLine) {
		return "", false
	}
	for _, basic := range basicLandColors {
		if strings.Contains(typeLine, basic.subtype) {
			return basic.color, true
		}
	}
	return mana.Colorless, true
}
