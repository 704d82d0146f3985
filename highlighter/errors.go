package highlighter

import "github.com/pkg/errors"

var (
	// ErrNoContainer is returned when the container selector matches nothing.
	ErrNoContainer = errors.New("highlighter: container not found")
	// ErrUnknownColor is returned by SetActiveColor for names missing from Config.Colors.
	ErrUnknownColor = errors.New("highlighter: unknown color")
	// ErrEmptyClassName is returned when the config has no marker class.
	ErrEmptyClassName = errors.New("highlighter: className is required")
)
