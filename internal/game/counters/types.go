package counters

import (
	"fmt"
	"strings"
)

// CounterType is the closed set of counters a card instance can carry.
type CounterType string

const (
	// CounterTypeP1P1 is a +1/+1 counter.
	CounterTypeP1P1 CounterType = "p1p1"
	// CounterTypeLoyalty is a planeswalker loyalty counter.
	CounterTypeLoyalty CounterType = "loyalty"
	// CounterTypeOther covers every other named counter (charge, time, ...).
	CounterTypeOther CounterType = "other"
)

// allowed is the allow-list used when decoding counter types from the wire.
var allowed = map[string]CounterType{
	"p1p1":    CounterTypeP1P1,
	"+1/+1":   CounterTypeP1P1,
	"loyalty": CounterTypeLoyalty,
	"other":   CounterTypeOther,
}

// ParseCounterType validates a counter type name against the allow-list.
func ParseCounterType(name string) (CounterType, error) {
	if ct, ok := allowed[strings.ToLower(strings.TrimSpace(name))]; ok {
		return ct, nil
	}
	return "", fmt.Errorf("unknown counter type %q", name)
}

// String returns the string representation of the counter type.
func (ct CounterType) String() string {
	return string(ct)
}
