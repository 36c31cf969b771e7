// Package validate checks dog names and feeding times before they reach the store.
package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind classifies a validation failure.
type Kind int

const (
	EmptyField Kind = iota + 1
	MalformedTime
)

func (k Kind) String() string {
	switch k {
	case EmptyField:
		return "EmptyField"
	case MalformedTime:
		return "MalformedTime"
	}
	return "Unknown"
}

var (
	ErrEmptyField    = errors.New("please enter both dog name and feeding time")
	ErrMalformedTime = errors.New("please enter feeding time in HH:mm format")
)

// ValidationError is returned by Validate. It matches ErrEmptyField or
// ErrMalformedTime under errors.Is.
type ValidationError struct {
	Kind Kind
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case EmptyField:
		return "Please enter both dog name and feeding time."
	case MalformedTime:
		return "Please enter feeding time in HH:mm format."
	}
	return "invalid input"
}

// Title is the heading shown above the message.
func (e *ValidationError) Title() string {
	if e.Kind == MalformedTime {
		return "Invalid Time"
	}
	return "Error"
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrEmptyField:
		return e.Kind == EmptyField
	case ErrMalformedTime:
		return e.Kind == MalformedTime
	}
	return false
}

// feedingTimeRe checks shape only; "99:99" passes.
var feedingTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Validate reports whether name and feedingTime may be stored.
// Both are trimmed before checking.
func Validate(name, feedingTime string) error {
	name, feedingTime = strings.TrimSpace(name), strings.TrimSpace(feedingTime)
	if name == "" || feedingTime == "" {
		return &ValidationError{Kind: EmptyField}
	}
	if !feedingTimeRe.MatchString(feedingTime) {
		return &ValidationError{Kind: MalformedTime}
	}
	return nil
}

// AutoColon applies the feeding-time input mask to a new keystroke state.
// Two characters without a colon get one appended; anything longer than
// five characters is refused and current is kept. Lengths count runes.
func AutoColon(current, typed string) string {
	n := utf8.RuneCountInString(typed)
	if n == 2 && !strings.Contains(typed, ":") {
		return typed + ":"
	}
	if n <= 5 {
		return typed
	}
	return current
}

// Mask replays input through AutoColon one keystroke at a time, so "0930"
// becomes "09:30". Input that already contains a colon, or that has more
// than four characters, is returned as is so Validate can reject it rather
// than have the mask drop keystrokes.
func Mask(input string) string {
	if strings.Contains(input, ":") || utf8.RuneCountInString(input) > 4 {
		return input
	}
	var out string
	for _, r := range input {
		out = AutoColon(out, out+string(r))
	}
	return out
}
