package mana

import "strings"

// Color identifies one of the six mana pool buckets.
type Color string

const (
	White     Color = "w"
	Blue      Color = "u"
	Black     Color = "b"
	Red       Color = "r"
	Green     Color = "g"
	Colorless Color = "c"
)

// Colors lists every pool bucket in WUBRG order followed by colorless.
var Colors = []Color{White, Blue, Black, Red, Green, Colorless}

// genericOrder is the drain order used when paying generic costs. Colorless
// goes first so colored mana stays available for later colored costs.
var genericOrder = []Color{Colorless, White, Blue, Black, Red, Green}

// ParseColor maps a mana symbol such as "G", "{g}" or "green" to a Color.
func ParseColor(symbol string) (Color, bool) {
	s := strings.ToLower(strings.Trim(strings.TrimSpace(symbol), "{}"))
	switch s {
	case "w", "white":
		return White, true
	case "u", "blue":
		return Blue, true
	case "b", "black":
		return Black, true
	case "r", "red":
		return Red, true
	case "g", "green":
		return Green, true
	case "c", "colorless":
		return Colorless, true
	}
	return "", false
}

// Pool is a player's unspent mana. It is a value type: every operation
// returns a new Pool and never drives a bucket negative.
type Pool struct {
	W int `json:"w"`
	U int `json:"u"`
	B int `json:"b"`
	R int `json:"r"`
	G int `json:"g"`
	C int `json:"c"`
}

// Get returns the amount of the given color.
func (p Pool) Get(c Color) int {
	switch c {
	case White:
		return p.W
	case Blue:
		return p.U
	case Black:
		return p.B
	case Red:
		return p.R
	case Green:
		return p.G
	case Colorless:
		return p.C
	default:
		return 0
	}
}

func (p Pool) set(c Color, amount int) Pool {
	switch c {
	case White:
		p.W = amount
	case Blue:
		p.U = amount
	case Black:
		p.B = amount
	case Red:
		p.R = amount
	case Green:
		p.G = amount
	case Colorless:
		p.C = amount
	}
	return p
}

// Add returns a pool with amount mana of color c added. Non-positive
// amounts are ignored.
func (p Pool) Add(c Color, amount int) Pool {
	if amount <= 0 {
		return p
	}
	return p.set(c, p.Get(c)+amount)
}

// SpendOne removes a single mana of color c. It reports false and returns the
// pool unchanged when that bucket is empty.
func (p Pool) SpendOne(c Color) (Pool, bool) {
	have := p.Get(c)
	if have <= 0 {
		return p, false
	}
	return p.set(c, have-1), true
}

// Total returns the amount of mana across all buckets.
func (p Pool) Total() int {
	return p.W + p.U + p.B + p.R + p.G + p.C
}

// IsEmpty reports whether every bucket is zero.
func (p Pool) IsEmpty() bool {
	return p == Pool{}
}
