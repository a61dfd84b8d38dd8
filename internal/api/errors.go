package api

import (
	"errors"
	"fmt"
)

// FallbackMessage is shown when the server gave us nothing usable.
const FallbackMessage = "Something went wrong. Please try again."

// Error is a non-2xx response. Message carries the server's own
// message/error field verbatim when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// UserMessage extracts the text to surface for err: the server's verbatim
// message for server-reported failures, the generic fallback for transport
// failures and everything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return FallbackMessage
}
