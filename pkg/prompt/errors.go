package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNotEditable is returned for properties the editor cannot walk, such as
	// payloads that failed to decode.
	ErrNotEditable = errors.New("prompt: properties not editable")
)
