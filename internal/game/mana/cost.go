package mana

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ErrInsufficientMana is returned when a pool cannot cover a cost.
var ErrInsufficientMana = errors.New("insufficient mana")

// Cost is a parsed mana cost. Colored requirements must be paid with their
// own color; Generic may be paid with anything.
type Cost struct {
	W       int
	U       int
	B       int
	R       int
	G       int
	C       int
	Generic int
}

// A cost string is a sequence of brace-delimited symbols. Anything outside a
// well-formed {...} group is lexed as Text and elided.
var costLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Symbol", Pattern: `\{[^{}]*\}`},
	{Name: "Text", Pattern: `[^{]+|\{`},
})

type costGrammar struct {
	Symbols []string `parser:"@Symbol*"`
}

var costParser = participle.MustBuild[costGrammar](
	participle.Lexer(costLexer),
	participle.Elide("Text"),
)

// ParseCost parses a cost such as "{2}{G}{G}". Single-letter color symbols
// (w, u, b, r, g, c in any case) count toward that color and non-negative
// integers toward Generic. Unrecognized symbols such as {X} or hybrids are
// ignored, so a malformed cost degrades to free instead of failing.
func ParseCost(costStr string) Cost {
	var cost Cost
	if strings.TrimSpace(costStr) == "" {
		return cost
	}

	parsed, err := costParser.ParseString("", costStr)
	if err != nil {
		return cost
	}

	for _, sym := range parsed.Symbols {
		cost.addSymbol(strings.TrimSpace(sym[1 : len(sym)-1]))
	}
	return cost
}

func (c *Cost) addSymbol(symbol string) {
	if color, ok := symbolColor(symbol); ok {
		c.add(color, 1)
		return
	}
	if n, ok := genericAmount(symbol); ok {
		c.Generic += n
	}
}

func symbolColor(symbol string) (Color, bool) {
	if len(symbol) != 1 {
		return "", false
	}
	return ParseColor(symbol)
}

func genericAmount(symbol string) (int, bool) {
	if symbol == "" {
		return 0, false
	}
	for _, r := range symbol {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(symbol)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Colored returns the colored requirement for c.
func (c Cost) Colored(color Color) int {
	switch color {
	case White:
		return c.W
	case Blue:
		return c.U
	case Black:
		return c.B
	case Red:
		return c.R
	case Green:
		return c.G
	case Colorless:
		return c.C
	default:
		return 0
	}
}

func (c *Cost) add(color Color, n int) {
	switch color {
	case White:
		c.W += n
	case Blue:
		c.U += n
	case Black:
		c.B += n
	case Red:
		c.R += n
	case Green:
		c.G += n
	case Colorless:
		c.C += n
	}
}

// ManaValue returns the total amount of mana the cost requires.
func (c Cost) ManaValue() int {
	return c.W + c.U + c.B + c.R + c.G + c.C + c.Generic
}

// String renders the cost in canonical form, generic first.
func (c Cost) String() string {
	var b strings.Builder
	if c.Generic > 0 || c.ManaValue() == 0 {
		fmt.Fprintf(&b, "{%d}", c.Generic)
	}
	for _, color := range []Color{White, Blue, Black, Red, Green, Colorless} {
		sym := "{" + strings.ToUpper(string(color)) + "}"
		b.WriteString(strings.Repeat(sym, c.Colored(color)))
	}
	return b.String()
}

// WithGeneric appends a {n} generic surcharge to a cost string. It is how
// commander tax is composed onto a printed cost.
func WithGeneric(costStr string, n int) string {
	if n <= 0 {
		return costStr
	}
	return fmt.Sprintf("%s{%d}", costStr, n)
}

// payColored subtracts every colored requirement from the pool. It reports
// false as soon as any bucket would go negative.
func payColored(pool Pool, cost Cost) (Pool, bool) {
	for _, color := range Colors {
		left := pool.Get(color) - cost.Colored(color)
		if left < 0 {
			return pool, false
		}
		pool = pool.set(color, left)
	}
	return pool, true
}

// CanAfford reports whether pool covers cost: colored requirements first,
// then the remainder against Generic.
func CanAfford(pool Pool, cost Cost) bool {
	rest, ok := payColored(pool, cost)
	if !ok {
		return false
	}
	return rest.Total() >= cost.Generic
}

// Spend pays cost from pool. Generic mana is drained in the fixed order
// c, w, u, b, r, g. On failure the original pool is returned together with
// ErrInsufficientMana; no partial payment is ever applied.
func Spend(pool Pool, cost Cost) (Pool, error) {
	if !CanAfford(pool, cost) {
		return pool, fmt.Errorf("%w: need %s", ErrInsufficientMana, cost)
	}

	rest, _ := payColored(pool, cost)
	generic := cost.Generic
	for _, color := range genericOrder {
		if generic == 0 {
			break
		}
		have := rest.Get(color)
		take := min(have, generic)
		rest = rest.set(color, have-take)
		generic -= take
	}
	return rest, nil
}
