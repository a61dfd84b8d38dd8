package state

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visaline/internal/models"
	"visaline/internal/notify"
)

func newRequests(env *testEnv) *Requests {
	return NewRequests(env.client, env.notifier, zerolog.Nop())
}

func TestCreateRequestSuccess(t *testing.T) {
	var gotInput CreateRequestInput
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/requests/create-request", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))
		jsonHandler(http.StatusOK, `{
			"message": "ok",
			"data": {"id":"r1","service":"Tourist Visa","status":"pending","createdAt":"2026-08-01T10:00:00Z"}
		}`)(w, r)
	})
	requests := newRequests(env)

	outcome, err := requests.Create(context.Background(), CreateRequestInput{
		Service:        "s1",
		SubServiceName: "USA",
		FormData:       map[string]any{"passport_number": "X123", "travellers": 2},
		Documents:      []models.UploadedFile{{Filename: "passport.pdf", URL: "https://cdn/x", FileID: "f1"}},
	})
	require.NoError(t, err)

	assert.Empty(t, outcome.ExternalAddress)
	assert.Equal(t, models.RequestStatusPending, outcome.Request.Status)
	assert.Equal(t, "X123", gotInput.FormData["passport_number"])
	require.Len(t, requests.MyRequests(), 1)
	assert.Equal(t, notify.Success, env.lastToast(t).Kind)
}

func TestCreateRequestExternalDocumentsFlow(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{
		"message": "ok",
		"data": {"id":"r2","service":"Attestation","status":"pending","createdAt":"2026-08-01T10:00:00Z"},
		"action": "SEND_DOCUMENTS_EXTERNALLY",
		"address": "12 Harbor Rd, Valletta"
	}`))
	requests := newRequests(env)

	outcome, err := requests.Create(context.Background(), CreateRequestInput{Service: "s2"})
	require.NoError(t, err)

	assert.Equal(t, "12 Harbor Rd, Valletta", outcome.ExternalAddress)
	toast := env.lastToast(t)
	assert.Equal(t, notify.Info, toast.Kind, "external-address outcome is not a plain success")
	assert.Contains(t, toast.Text, "12 Harbor Rd, Valletta")
}

func TestMineReplacesList(t *testing.T) {
	env := newTestEnv(t, jsonHandler(http.StatusOK, `{"data":[
		{"id":"r1","service":"Tourist Visa","status":"processing","createdAt":"2026-08-01T10:00:00Z"}
	]}`))
	requests := newRequests(env)

	require.NoError(t, requests.Mine(context.Background()))
	require.NoError(t, requests.Mine(context.Background()))
	assert.Len(t, requests.MyRequests(), 1)
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jsonHandler(http.StatusOK, `{"data":[
				{"id":"r1","service":"Tourist Visa","status":"pending","createdAt":"2026-08-01T10:00:00Z"}
			]}`)(w, r)
			return
		}
		assert.Equal(t, "/requests/update-status/r1", r.URL.Path)
		jsonHandler(http.StatusOK, `{
			"message": "ok",
			"data": {"id":"r1","service":"Tourist Visa","status":"processing","createdAt":"2026-08-01T10:00:00Z"}
		}`)(w, r)
	})
	requests := newRequests(env)
	require.NoError(t, requests.All(context.Background()))

	err := requests.UpdateStatus(context.Background(), "r1", UpdateStatusInput{Status: models.RequestStatusProcessing})
	require.NoError(t, err)

	all := requests.AllRequests()
	require.Len(t, all, 1)
	assert.Equal(t, models.RequestStatusProcessing, all[0].Status)
}

func TestUpdateStatusTerminalRejectedBeforeNetwork(t *testing.T) {
	for _, status := range []models.RequestStatus{
		models.RequestStatusCompleted,
		models.RequestStatusRejected,
		models.RequestStatusCancelled,
	} {
		t.Run(string(status), func(t *testing.T) {
			env := newTestEnv(t, jsonHandler(http.StatusOK, `{"data":[
				{"id":"r1","service":"Tourist Visa","status":"`+string(status)+`","createdAt":"2026-08-01T10:00:00Z"}
			]}`))
			requests := newRequests(env)
			require.NoError(t, requests.All(context.Background()))
			hitsAfterFetch := env.hits.Load()

			err := requests.UpdateStatus(context.Background(), "r1", UpdateStatusInput{Status: models.RequestStatusProcessing})
			require.ErrorIs(t, err, ErrTerminalStatus)
			assert.Equal(t, hitsAfterFetch, env.hits.Load(), "terminal guard must fire before any network call")
			assert.Equal(t, notify.Warning, env.lastToast(t).Kind)

			// Status unchanged locally.
			assert.Equal(t, status, requests.AllRequests()[0].Status)
		})
	}
}

func TestUpdateStatusRejectionWithReason(t *testing.T) {
	var gotInput UpdateStatusInput
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jsonHandler(http.StatusOK, `{"data":[
				{"id":"r1","service":"Tourist Visa","status":"processing","createdAt":"2026-08-01T10:00:00Z"}
			]}`)(w, r)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotInput))
		jsonHandler(http.StatusOK, `{
			"message": "ok",
			"data": {"id":"r1","service":"Tourist Visa","status":"rejected","rejectedReason":"Blurry passport scan","createdAt":"2026-08-01T10:00:00Z"}
		}`)(w, r)
	})
	requests := newRequests(env)
	require.NoError(t, requests.All(context.Background()))

	err := requests.UpdateStatus(context.Background(), "r1", UpdateStatusInput{
		Status:         models.RequestStatusRejected,
		RejectedReason: "Blurry passport scan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Blurry passport scan", gotInput.RejectedReason)
	assert.Equal(t, "Blurry passport scan", requests.AllRequests()[0].RejectedReason)
}

func TestRejectedFetchLeavesPriorDataUntouched(t *testing.T) {
	fail := false
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			jsonHandler(http.StatusInternalServerError, `{"message":"boom"}`)(w, r)
			return
		}
		jsonHandler(http.StatusOK, `{"data":[
			{"id":"r1","service":"Tourist Visa","status":"pending","createdAt":"2026-08-01T10:00:00Z"}
		]}`)(w, r)
	})
	requests := newRequests(env)
	require.NoError(t, requests.Mine(context.Background()))

	fail = true
	require.Error(t, requests.Mine(context.Background()))

	assert.Len(t, requests.MyRequests(), 1, "rejected fetch keeps prior data")
	assert.Equal(t, "boom", requests.Err())
}
