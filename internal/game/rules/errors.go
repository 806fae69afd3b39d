package rules

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a recoverable rule violation.
type ErrorKind string

const (
	KindIllegalTiming     ErrorKind = "IllegalTiming"
	KindLandLimitExceeded ErrorKind = "LandLimitExceeded"
	KindInsufficientMana  ErrorKind = "InsufficientMana"
	KindLibraryEmpty      ErrorKind = "LibraryEmpty"
	KindInvalidCounter    ErrorKind = "InvalidCounter"
)

// Sentinels matched by RuleError via errors.Is.
var (
	ErrIllegalTiming     = errors.New("illegal timing")
	ErrLandLimitExceeded = errors.New("land limit exceeded")
	ErrInsufficientMana  = errors.New("insufficient mana")
	ErrLibraryEmpty      = errors.New("library empty")
	ErrInvalidCounter    = errors.New("invalid counter")
)

var kindSentinels = map[ErrorKind]error{
	KindIllegalTiming:     ErrIllegalTiming,
	KindLandLimitExceeded: ErrLandLimitExceeded,
	KindInsufficientMana:  ErrInsufficientMana,
	KindLibraryEmpty:      ErrLibraryEmpty,
	KindInvalidCounter:    ErrInvalidCounter,
}

// RuleError is a non-fatal rejection. Message is shown to the player as is.
type RuleError struct {
	Kind    ErrorKind
	Message string
}

// NewRuleError formats a RuleError of the given kind.
func NewRuleError(kind ErrorKind, format string, args ...any) *RuleError {
	return &RuleError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *RuleError) Error() string {
	return e.Message
}

// Is matches the sentinel for the error's kind.
func (e *RuleError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// KindOf returns the kind of a RuleError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuleError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return "", false
}
