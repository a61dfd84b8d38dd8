package state

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"visaline/internal/api"
	"visaline/internal/notify"
	"visaline/internal/session"
)

// testEnv wires one slice stack against a fake server, counting every
// request that actually reaches it.
type testEnv struct {
	client   *api.Client
	store    *session.Store
	notifier *notify.Channel
	hits     *atomic.Int64
	toasts   *[]notify.Message
}

func newTestEnv(t *testing.T, handler http.HandlerFunc) *testEnv {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir(), zerolog.Nop())
	client, err := api.New(api.Config{
		BaseURL: srv.URL,
		Tokens:  store,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	notifier := notify.NewChannel()
	toasts := []notify.Message{}
	notifier.Subscribe(func(m notify.Message) {
		toasts = append(toasts, m)
	})

	return &testEnv{
		client:   client,
		store:    store,
		notifier: notifier,
		hits:     &hits,
		toasts:   &toasts,
	}
}

func (e *testEnv) lastToast(t *testing.T) notify.Message {
	t.Helper()
	require.NotEmpty(t, *e.toasts)
	return (*e.toasts)[len(*e.toasts)-1]
}

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}
}
