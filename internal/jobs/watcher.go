// Package jobs runs the background inbox watcher: a cron-scheduled poll of
// the notification feed that toasts unread arrivals.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"visaline/internal/notify"
	"visaline/internal/state"
)

type Watcher struct {
	cron     *cron.Cron
	inbox    *state.Inbox
	notifier *notify.Channel
	log      zerolog.Logger

	pageSize int

	// A slow fetch can outlast the schedule interval, so polls overlap.
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewWatcher(inbox *state.Inbox, notifier *notify.Channel, pageSize int, log zerolog.Logger) *Watcher {
	return &Watcher{
		cron:     cron.New(cron.WithSeconds()),
		inbox:    inbox,
		notifier: notifier,
		log:      log,
		pageSize: pageSize,
		seen:     make(map[string]struct{}),
	}
}

// Start primes the seen set with the current feed, then polls on schedule.
func (w *Watcher) Start(schedule string) error {
	w.poll(true)

	if _, err := w.cron.AddFunc(schedule, func() { w.poll(false) }); err != nil {
		return err
	}
	w.cron.Start()
	return nil
}

// Stop halts the schedule, waiting a bounded time for a running poll.
func (w *Watcher) Stop() {
	ctx := w.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		w.log.Warn().Msg("watcher stop timed out")
	}
}

func (w *Watcher) poll(prime bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.inbox.Fetch(ctx, 1, w.pageSize); err != nil {
		// Fetch already toasted; just trace it.
		w.log.Debug().Err(err).Msg("inbox poll failed")
		return
	}

	items := w.inbox.Items()

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, item := range items {
		if _, ok := w.seen[item.ID]; ok {
			continue
		}
		w.seen[item.ID] = struct{}{}
		if prime || item.IsRead {
			continue
		}
		text := item.Title
		if item.Message != "" {
			text += ": " + item.Message
		}
		w.notifier.Info(text)
	}
}
