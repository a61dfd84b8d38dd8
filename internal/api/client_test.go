package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() string { return s.token }

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens TokenSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(Config{
		BaseURL: srv.URL,
		Tokens:  tokens,
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)
	return client
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}, &staticTokens{token: "t1"})

	require.NoError(t, client.Get(context.Background(), "/services/get-services", nil, nil))
	assert.Equal(t, "Bearer t1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestDoUnauthenticatedWhenNoToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}, &staticTokens{})

	require.NoError(t, client.Get(context.Background(), "/ui/ui-config", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDoReadsTokenBeforeEveryRequest(t *testing.T) {
	var seen []string
	tokens := &staticTokens{token: "first"}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}, tokens)

	require.NoError(t, client.Get(context.Background(), "/x", nil, nil))
	tokens.token = "second"
	require.NoError(t, client.Get(context.Background(), "/x", nil, nil))

	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestDoDecodesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{"data":["a","b"]}`))
	}, nil)

	var out struct {
		Data []string `json:"data"`
	}
	query := url.Values{"page": {"1"}}
	require.NoError(t, client.Get(context.Background(), "/notifications/get-notifications", query, &out))
	assert.Equal(t, []string{"a", "b"}, out.Data)
}

func TestDoServerErrorMessageVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}, nil)

	err := client.Post(context.Background(), "/auth/login", map[string]string{}, nil)
	require.Error(t, err)

	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, "Invalid credentials", UserMessage(err))
}

func TestDoServerErrorFieldFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"missing_token"}`))
	}, nil)

	err := client.Get(context.Background(), "/requests/get-requests", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "missing_token", UserMessage(err))
}

func TestDoTransportFailureUsesFallbackMessage(t *testing.T) {
	client, err := New(Config{
		BaseURL: "http://127.0.0.1:1",
		Logger:  zerolog.Nop(),
	})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/services/get-services", nil, nil)
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, UserMessage(err))
}

func TestDoUnparseableErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream down`))
	}, nil)

	err := client.Get(context.Background(), "/x", nil, nil)
	require.Error(t, err)
	assert.Equal(t, FallbackMessage, UserMessage(err))
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
