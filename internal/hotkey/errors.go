package hotkey

import (
	"errors"
	"fmt"
)

// ErrBackendNotAvailable is returned when a backend cannot be used on the current system.
var ErrBackendNotAvailable = errors.New("backend not available on this system")

// ErrRegistrationFailed wraps a refusal from the OS to bind a hotkey, for
// example because another process already owns the combination.
var ErrRegistrationFailed = errors.New("platform hotkey registration failed")

// ParseErrorKind classifies why a mnemonic was rejected.
type ParseErrorKind int

const (
	EmptyInput ParseErrorKind = iota + 1
	NoModifier
	NoMainKey
	UnknownKey
	MultipleMainKeys
)

func (k ParseErrorKind) String() string {
	switch k {
	case EmptyInput:
		return "EmptyInput"
	case NoModifier:
		return "NoModifier"
	case NoMainKey:
		return "NoMainKey"
	case UnknownKey:
		return "UnknownKey"
	case MultipleMainKeys:
		return "MultipleMainKeys"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is. They match any ParseError of the same kind.
var (
	ErrEmptyInput       = &ParseError{Kind: EmptyInput}
	ErrNoModifier       = &ParseError{Kind: NoModifier}
	ErrNoMainKey        = &ParseError{Kind: NoMainKey}
	ErrUnknownKey       = &ParseError{Kind: UnknownKey}
	ErrMultipleMainKeys = &ParseError{Kind: MultipleMainKeys}
)

// ParseError describes a rejected mnemonic.
type ParseError struct {
	Kind  ParseErrorKind
	Token string // offending token for UnknownKey and MultipleMainKeys
	Input string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case EmptyInput:
		return "hotkey is empty"
	case NoModifier:
		return fmt.Sprintf("hotkey '%s' has no modifier", e.Input)
	case NoMainKey:
		return fmt.Sprintf("hotkey '%s' has no main key", e.Input)
	case UnknownKey:
		return fmt.Sprintf("hotkey '%s': unknown key '%s'", e.Input, e.Token)
	case MultipleMainKeys:
		return fmt.Sprintf("hotkey '%s': more than one main key ('%s')", e.Input, e.Token)
	default:
		return fmt.Sprintf("hotkey '%s': %s", e.Input, e.Kind)
	}
}

// Is matches another ParseError with the same Kind.
func (e *ParseError) Is(target error) bool {
	pe, ok := target.(*ParseError)
	return ok && pe.Kind == e.Kind
}
