package mana

import "testing"

func TestPoolAdd(t *testing.T) {
	pool := Pool{}

	pool = pool.Add(White, 2)
	if pool.Get(White) != 2 {
		t.Errorf("Expected 2 white mana, got %d", pool.Get(White))
	}

	pool = pool.Add(Blue, 1)
	if pool.Get(Blue) != 1 {
		t.Errorf("Expected 1 blue mana, got %d", pool.Get(Blue))
	}

	pool = pool.Add(Red, -3)
	if pool.Get(Red) != 0 {
		t.Errorf("Expected negative add to be ignored, got %d red", pool.Get(Red))
	}
	if pool.Total() != 3 {
		t.Errorf("Expected total 3, got %d", pool.Total())
	}
}

func TestPoolSpendOne(t *testing.T) {
	pool := Pool{G: 1}

	pool, ok := pool.SpendOne(Green)
	if !ok || pool.G != 0 {
		t.Fatalf("Expected to spend the only green mana, got ok=%v pool=%+v", ok, pool)
	}

	pool, ok = pool.SpendOne(Green)
	if ok {
		t.Error("Expected spending from an empty bucket to fail")
	}
	if !pool.IsEmpty() {
		t.Errorf("Expected pool to stay empty, got %+v", pool)
	}
}

func TestParseColor(t *testing.T) {
	tests := map[string]Color{
		"W":         White,
		"{u}":       Blue,
		"black":     Black,
		" R ":       Red,
		"G":         Green,
		"colorless": Colorless,
	}
	for in, want := range tests {
		got, ok := ParseColor(in)
		if !ok || got != want {
			t.Errorf("ParseColor(%q): expected %s, got %s (ok=%v)", in, want, got, ok)
		}
	}

	if _, ok := ParseColor("purple"); ok {
		t.Error("Expected unknown color to be rejected")
	}
}
