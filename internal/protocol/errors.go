package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrBufferTooSmall      = errors.New("psyc: buffer too small")
	ErrModifierNameMissing = errors.New("psyc: modifier name missing")
	ErrMethodMissing       = errors.New("psyc: data without method")
	ErrLengthMismatch      = errors.New("psyc: rendered length differs from declared length")
)

// Section names the modifier block a line belongs to.
type Section string

const (
	SectionRouting Section = "routing"
	SectionEntity  Section = "entity"
)

// ModifierError reports which modifier line failed to render.
type ModifierError struct {
	Section Section
	Index   int
}

func (e *ModifierError) Error() string {
	return fmt.Sprintf("psyc: %s modifier %d: name missing", e.Section, e.Index)
}

func (e *ModifierError) Unwrap() error {
	return ErrModifierNameMissing
}

// LengthError means the sizing pass and the renderer disagree. It is a
// caller bug, never a condition worth retrying.
type LengthError struct {
	What string
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	if e.Got < 0 {
		return fmt.Sprintf("psyc: %s overflows declared length %d", e.What, e.Want)
	}
	return fmt.Sprintf("psyc: %s rendered %d bytes, declared %d", e.What, e.Got, e.Want)
}

func (e *LengthError) Unwrap() error {
	return ErrLengthMismatch
}
