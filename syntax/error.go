package syntax

import "fmt"

// ErrorCode identifies the kind of pattern syntax error.
// The string value is the human-readable reason reported to callers.
type ErrorCode string

const (
	// ErrUnterminatedClass indicates a character class with no closing ']'.
	ErrUnterminatedClass ErrorCode = "missing closing ]"

	// ErrInvalidClassRange indicates a class range whose bounds are reversed,
	// such as [z-a].
	ErrInvalidClassRange ErrorCode = "invalid character class range"

	// ErrMissingParen indicates a group with no closing ')'.
	ErrMissingParen ErrorCode = "missing closing )"

	// ErrUnexpectedParen indicates a ')' with no matching '('.
	ErrUnexpectedParen ErrorCode = "unexpected )"

	// ErrInvalidEscape indicates an escape sequence outside the supported set.
	ErrInvalidEscape ErrorCode = "invalid escape sequence"

	// ErrTrailingBackslash indicates a '\' at the end of the pattern.
	ErrTrailingBackslash ErrorCode = "trailing backslash at end of pattern"

	// ErrMissingRepeatArgument indicates a quantifier with nothing to repeat,
	// e.g. a pattern starting with '*'.
	ErrMissingRepeatArgument ErrorCode = "missing argument to repetition operator"

	// ErrNestedRepeat indicates a quantifier applied directly to another
	// quantifier, e.g. "a**".
	ErrNestedRepeat ErrorCode = "invalid nested repetition operator"

	// ErrZeroWidthRepeat indicates a quantifier applied to an anchor,
	// e.g. "^*". Anchors consume no input, so repeating them is meaningless.
	ErrZeroWidthRepeat ErrorCode = "repetition of zero-width assertion"

	// ErrInvalidRepeat indicates malformed or contradictory counted
	// repetition bounds: non-numeric, unterminated, or min > max.
	ErrInvalidRepeat ErrorCode = "invalid repetition bounds"
)

// Error is a pattern syntax error. It carries the byte offset of the
// offending construct so callers can point at the exact position.
type Error struct {
	Code    ErrorCode
	Pattern string
	Pos     int
}

func (e *Error) Error() string {
	return fmt.Sprintf("error parsing pattern: %s at offset %d in `%s`", e.Code, e.Pos, e.Pattern)
}
