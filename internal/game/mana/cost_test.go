package mana

import (
	"errors"
	"testing"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		input    string
		expected Cost
	}{
		{"", Cost{}},
		{"{1}", Cost{Generic: 1}},
		{"{G}", Cost{G: 1}},
		{"{g}", Cost{G: 1}},
		{"{1}{G}", Cost{Generic: 1, G: 1}},
		{"{2}{R}{R}", Cost{Generic: 2, R: 2}},
		{"{10}", Cost{Generic: 10}},
		{"{W}{U}{B}{R}{G}", Cost{W: 1, U: 1, B: 1, R: 1, G: 1}},
		{"{C}{C}", Cost{C: 2}},
		{"{X}{R}", Cost{R: 1}},
		{"{W/U}{2}", Cost{Generic: 2}},
		{"{-1}{G}", Cost{G: 1}},
		{"{}", Cost{}},
		{"2G", Cost{}},
		{"{2{G}", Cost{G: 1}},
		{"{3}{G} and some text", Cost{Generic: 3, G: 1}},
		{"{3}{G}{2}", Cost{Generic: 5, G: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseCost(tt.input)
			if got != tt.expected {
				t.Errorf("ParseCost(%q): expected %+v, got %+v", tt.input, tt.expected, got)
			}
		})
	}
}

func TestCanAfford(t *testing.T) {
	pool := Pool{W: 1, U: 2, G: 1}

	tests := []struct {
		cost   string
		canPay bool
	}{
		{"{G}", true},
		{"{U}{U}", true},
		{"{R}", false},
		{"{1}{G}", true},
		{"{3}{G}", true},
		{"{4}{G}", false},
		{"{G}{G}", false},
		{"{C}", false},
		{"{X}", true},
	}

	for _, tt := range tests {
		t.Run(tt.cost, func(t *testing.T) {
			if got := CanAfford(pool, ParseCost(tt.cost)); got != tt.canPay {
				t.Errorf("CanAfford(%s): expected %v, got %v", tt.cost, tt.canPay, got)
			}
		})
	}
}

func TestSpendPaysGenericColorlessFirst(t *testing.T) {
	pool, err := Spend(Pool{W: 1, C: 2}, ParseCost("{1}{W}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool != (Pool{C: 1}) {
		t.Errorf("expected {w:0 c:1}, got %+v", pool)
	}
}

func TestSpendGenericOrder(t *testing.T) {
	start := Pool{W: 1, U: 1, B: 1, R: 1, G: 1, C: 1}

	tests := []struct {
		generic  int
		expected Pool
	}{
		{1, Pool{W: 1, U: 1, B: 1, R: 1, G: 1}},
		{2, Pool{U: 1, B: 1, R: 1, G: 1}},
		{3, Pool{B: 1, R: 1, G: 1}},
		{4, Pool{R: 1, G: 1}},
		{5, Pool{G: 1}},
		{6, Pool{}},
	}

	for _, tt := range tests {
		got, err := Spend(start, Cost{Generic: tt.generic})
		if err != nil {
			t.Fatalf("generic %d: unexpected error: %v", tt.generic, err)
		}
		if got != tt.expected {
			t.Errorf("generic %d: expected %+v, got %+v", tt.generic, tt.expected, got)
		}
	}
}

func TestSpendIsAtomic(t *testing.T) {
	start := Pool{G: 1, C: 1}

	got, err := Spend(start, ParseCost("{2}{G}"))
	if !errors.Is(err, ErrInsufficientMana) {
		t.Fatalf("expected ErrInsufficientMana, got %v", err)
	}
	if got != start {
		t.Errorf("expected pool to be untouched, got %+v", got)
	}

	got, err = Spend(start, ParseCost("{U}"))
	if !errors.Is(err, ErrInsufficientMana) {
		t.Fatalf("expected ErrInsufficientMana, got %v", err)
	}
	if got != start {
		t.Errorf("expected pool to be untouched, got %+v", got)
	}
}

func TestWithGeneric(t *testing.T) {
	if got := WithGeneric("{3}{G}", 0); got != "{3}{G}" {
		t.Errorf("expected unchanged cost, got %s", got)
	}
	taxed := WithGeneric("{3}{G}", 2)
	if taxed != "{3}{G}{2}" {
		t.Errorf("expected {3}{G}{2}, got %s", taxed)
	}
	if c := ParseCost(taxed); c != (Cost{Generic: 5, G: 1}) {
		t.Errorf("expected taxed cost to parse as 5 generic + G, got %+v", c)
	}
}

func TestCostString(t *testing.T) {
	tests := map[string]string{
		"{G}{3}":       "{3}{G}",
		"{W}{U}":       "{W}{U}",
		"":             "{0}",
		"{2}{C}{R}{R}": "{2}{R}{R}{C}",
	}
	for in, want := range tests {
		if got := ParseCost(in).String(); got != want {
			t.Errorf("String(%q): expected %s, got %s", in, want, got)
		}
	}
}
