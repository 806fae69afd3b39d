package counters

import (
	"strconv"
	"strings"
)

// Counters holds the counters on a single card instance. Values never go
// below zero.
type Counters struct {
	P1P1    int `json:"p1p1"`
	Loyalty int `json:"loyalty"`
	Other   int `json:"other"`
}

// Get returns the count for the given type.
func (c Counters) Get(ct CounterType) int {
	switch ct {
	case CounterTypeP1P1:
		return c.P1P1
	case CounterTypeLoyalty:
		return c.Loyalty
	case CounterTypeOther:
		return c.Other
	default:
		return 0
	}
}

func (c Counters) set(ct CounterType, n int) Counters {
	switch ct {
	case CounterTypeP1P1:
		c.P1P1 = n
	case CounterTypeLoyalty:
		c.Loyalty = n
	case CounterTypeOther:
		c.Other = n
	}
	return c
}

// Add returns a copy with amount counters of type ct added.
func (c Counters) Add(ct CounterType, amount int) Counters {
	if amount <= 0 {
		return c
	}
	return c.set(ct, c.Get(ct)+amount)
}

// Remove returns a copy with amount counters of type ct removed.
// Will not allow count to go below 0.
func (c Counters) Remove(ct CounterType, amount int) Counters {
	if amount <= 0 {
		return c
	}
	return c.set(ct, max(c.Get(ct)-amount, 0))
}

// Total returns the number of counters of every type.
func (c Counters) Total() int {
	return c.P1P1 + c.Loyalty + c.Other
}

// Boost applies p1p1 counters to a printed power or toughness value.
// Non-numeric values such as "*" or "1+*" are returned unchanged.
func (c Counters) Boost(base string) string {
	if c.P1P1 == 0 {
		return base
	}
	n, err := strconv.Atoi(strings.TrimSpace(base))
	if err != nil {
		return base
	}
	return strconv.Itoa(n + c.P1P1)
}
