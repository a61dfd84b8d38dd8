package state

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"visaline/internal/api"
	"visaline/internal/models"
	"visaline/internal/notify"
)

// Inbox owns the server-delivered notification feed. Page 1 replaces the
// list, later pages append; the caller tracks TotalPages and must not
// fetch past it.
type Inbox struct {
	lifecycle
	api      *api.Client
	notifier *notify.Channel
	log      zerolog.Logger

	items      []models.Notification
	page       int
	totalPages int
	unread     int
}

func NewInbox(client *api.Client, notifier *notify.Channel, log zerolog.Logger) *Inbox {
	return &Inbox{api: client, notifier: notifier, log: log}
}

type inboxEnvelope struct {
	Data        []models.Notification `json:"data"`
	Page        int                   `json:"page"`
	TotalPages  int                   `json:"totalPages"`
	UnreadCount int                   `json:"unreadCount"`
}

func (i *Inbox) Fetch(ctx context.Context, page, limit int) error {
	if page < 1 {
		page = 1
	}
	i.begin()

	query := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	var resp inboxEnvelope
	if err := i.api.Get(ctx, "/notifications/get-notifications", query, &resp); err != nil {
		return i.reject(i.notifier, err)
	}

	i.mu.Lock()
	if page == 1 {
		i.items = resp.Data
	} else {
		i.items = append(i.items, resp.Data...)
	}
	i.page = resp.Page
	i.totalPages = resp.TotalPages
	i.unread = resp.UnreadCount
	i.loading = false
	i.err = ""
	i.mu.Unlock()
	return nil
}

func (i *Inbox) ClearAll(ctx context.Context) error {
	i.begin()

	if err := i.api.Delete(ctx, "/notifications/clear-all", nil); err != nil {
		return i.reject(i.notifier, err)
	}

	i.mu.Lock()
	i.items = nil
	i.page = 0
	i.totalPages = 0
	i.unread = 0
	i.loading = false
	i.err = ""
	i.mu.Unlock()

	i.notifier.Success("Notifications cleared")
	return nil
}

// Items returns a copy of the loaded feed.
func (i *Inbox) Items() []models.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]models.Notification, len(i.items))
	copy(out, i.items)
	return out
}

func (i *Inbox) Page() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.page
}

func (i *Inbox) TotalPages() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.totalPages
}

func (i *Inbox) Unread() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.unread
}
