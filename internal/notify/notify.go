// Package notify is the process-wide feedback surface: a single-slot
// channel carrying one transient message at a time. A new message replaces
// whatever is showing and restarts the hide timer; there is no queue, the
// newest message always wins.
package notify

import (
	"sync"
	"time"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Warning Kind = "warning"
	Info    Kind = "info"
)

const (
	DefaultDuration = 3 * time.Second
	ErrorDuration   = 4 * time.Second
)

type Message struct {
	Text     string
	Kind     Kind
	Duration time.Duration
}

// Handler renders the current message. Called outside the channel lock.
type Handler func(Message)

type Channel struct {
	mu      sync.Mutex
	timer   *time.Timer
	current *Message
	handler Handler
}

func NewChannel() *Channel {
	return &Channel{}
}

// Subscribe registers the active renderer. The latest subscriber wins,
// matching the single mounted toast surface.
func (c *Channel) Subscribe(h Handler) {
	c.mu.Lock()
	c.handler = h
	c.mu.Unlock()
}

// Show replaces the current message and restarts the auto-hide timer.
// A zero duration picks the default for the kind.
func (c *Channel) Show(text string, kind Kind, duration time.Duration) {
	if duration <= 0 {
		duration = DefaultDuration
		if kind == Error {
			duration = ErrorDuration
		}
	}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	msg := Message{Text: text, Kind: kind, Duration: duration}
	c.current = &msg
	// The expiry only hides the message it was armed for: a timer that
	// already fired while being replaced must not take the new message
	// down with it.
	c.timer = time.AfterFunc(duration, func() { c.dismissIf(&msg) })
	handler := c.handler
	c.mu.Unlock()

	if handler != nil {
		handler(msg)
	}
}

func (c *Channel) dismissIf(msg *Message) {
	c.mu.Lock()
	if c.current == msg {
		c.current = nil
		c.timer = nil
	}
	c.mu.Unlock()
}

// Dismiss hides the current message, whether by timer expiry or user
// action.
func (c *Channel) Dismiss() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.mu.Unlock()
}

// Current returns the showing message, nil when hidden.
func (c *Channel) Current() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	msg := *c.current
	return &msg
}

func (c *Channel) Success(text string) { c.Show(text, Success, 0) }
func (c *Channel) Error(text string)   { c.Show(text, Error, 0) }
func (c *Channel) Warning(text string) { c.Show(text, Warning, 0) }
func (c *Channel) Info(text string)    { c.Show(text, Info, 0) }
