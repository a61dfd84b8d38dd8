// Package state holds the domain state slices: independent containers that
// issue API calls and reduce the results into their own fields. Every
// operation runs the same three-phase lifecycle — pending sets the loading
// flag and clears the previous error, fulfilled reduces the response,
// rejected records the user-facing message and leaves prior data alone.
//
// Reductions are serialized per slice by a mutex, but there is no request
// sequencing: of two in-flight fetches of the same resource, whichever
// settles last wins.
package state

import (
	"sync"

	"visaline/internal/api"
	"visaline/internal/notify"
)

// lifecycle is the per-slice pending/fulfilled/rejected machinery. The
// embedding slice guards its own data with the same mutex.
type lifecycle struct {
	mu      sync.Mutex
	loading bool
	err     string
}

func (l *lifecycle) begin() {
	l.mu.Lock()
	l.loading = true
	l.err = ""
	l.mu.Unlock()
}

// reject records the failure, toasts it when a channel is wired, and hands
// the original error back to the caller.
func (l *lifecycle) reject(notifier *notify.Channel, err error) error {
	msg := api.UserMessage(err)
	l.mu.Lock()
	l.loading = false
	l.err = msg
	l.mu.Unlock()

	if notifier != nil {
		notifier.Error(msg)
	}
	return err
}

// Loading reports whether an operation is in flight.
func (l *lifecycle) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Err returns the message from the last rejected operation, "" after a
// fulfilled one.
func (l *lifecycle) Err() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
