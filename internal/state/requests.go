package state

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"visaline/internal/api"
	"visaline/internal/models"
	"visaline/internal/notify"
)

var ErrTerminalStatus = errors.New("request is already in a terminal state")

// ActionSendDocumentsExternally marks a created request whose documents
// must be couriered to the returned address instead of uploaded.
const ActionSendDocumentsExternally = "SEND_DOCUMENTS_EXTERNALLY"

// Requests owns the user's submitted applications and, for admins, the
// full request list.
type Requests struct {
	lifecycle
	api      *api.Client
	notifier *notify.Channel
	log      zerolog.Logger

	mine []models.ServiceRequest
	all  []models.ServiceRequest
}

func NewRequests(client *api.Client, notifier *notify.Channel, log zerolog.Logger) *Requests {
	return &Requests{api: client, notifier: notifier, log: log}
}

type requestListEnvelope struct {
	Data []models.ServiceRequest `json:"data"`
}

type requestEnvelope struct {
	Message string                `json:"message"`
	Data    models.ServiceRequest `json:"data"`
	Action  string                `json:"action,omitempty"`
	Address string                `json:"address,omitempty"`
}

// Mine fetches the signed-in user's requests, replacing the list.
func (r *Requests) Mine(ctx context.Context) error {
	r.begin()

	var resp requestListEnvelope
	if err := r.api.Get(ctx, "/requests/get-my-requests", nil, &resp); err != nil {
		return r.reject(r.notifier, err)
	}

	r.mu.Lock()
	r.mine = resp.Data
	r.loading = false
	r.err = ""
	r.mu.Unlock()
	return nil
}

// All fetches every request; admin-facing.
func (r *Requests) All(ctx context.Context) error {
	r.begin()

	var resp requestListEnvelope
	if err := r.api.Get(ctx, "/requests/get-requests", nil, &resp); err != nil {
		return r.reject(r.notifier, err)
	}

	r.mu.Lock()
	r.all = resp.Data
	r.loading = false
	r.err = ""
	r.mu.Unlock()
	return nil
}

type CreateRequestInput struct {
	Service        string                `json:"service"`
	SubServiceName string                `json:"subServiceName,omitempty"`
	FormData       map[string]any        `json:"formData,omitempty"`
	Documents      []models.UploadedFile `json:"documents,omitempty"`
}

// CreateOutcome distinguishes a plain submission from one that requires
// couriering documents to an external address.
type CreateOutcome struct {
	Request         models.ServiceRequest
	ExternalAddress string
}

// Create submits a new application. Creation is not idempotent: callers
// gate resubmission on Loading().
func (r *Requests) Create(ctx context.Context, input CreateRequestInput) (CreateOutcome, error) {
	r.begin()

	var resp requestEnvelope
	if err := r.api.Post(ctx, "/requests/create-request", input, &resp); err != nil {
		return CreateOutcome{}, r.reject(r.notifier, err)
	}

	r.mu.Lock()
	r.mine = append(r.mine, resp.Data)
	r.loading = false
	r.err = ""
	r.mu.Unlock()

	outcome := CreateOutcome{Request: resp.Data}
	if resp.Action == ActionSendDocumentsExternally {
		outcome.ExternalAddress = resp.Address
		r.notifier.Info("Send your documents to: " + resp.Address)
	} else {
		r.notifier.Success("Request submitted")
	}
	return outcome, nil
}

type UpdateStatusInput struct {
	Status         models.RequestStatus `json:"status"`
	RejectedReason string               `json:"rejectedReason,omitempty"`
}

// UpdateStatus changes a request's status; admin-facing. A request already
// in a terminal state is rejected here, before any network call.
func (r *Requests) UpdateStatus(ctx context.Context, id string, input UpdateStatusInput) error {
	if current, ok := r.find(id); ok && current.Status.Terminal() {
		r.notifier.Warning("Request is already " + string(current.Status) + " and can no longer change")
		return ErrTerminalStatus
	}

	r.begin()

	var resp requestEnvelope
	if err := r.api.Put(ctx, "/requests/update-status/"+id, input, &resp); err != nil {
		return r.reject(r.notifier, err)
	}

	r.mu.Lock()
	patchRequest(r.all, resp.Data)
	patchRequest(r.mine, resp.Data)
	r.loading = false
	r.err = ""
	r.mu.Unlock()

	r.notifier.Success("Request marked " + string(resp.Data.Status))
	return nil
}

func patchRequest(list []models.ServiceRequest, updated models.ServiceRequest) {
	for i := range list {
		if list[i].ID == updated.ID {
			list[i] = updated
			return
		}
	}
}

func (r *Requests) find(id string) (models.ServiceRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.all {
		if req.ID == id {
			return req, true
		}
	}
	for _, req := range r.mine {
		if req.ID == id {
			return req, true
		}
	}
	return models.ServiceRequest{}, false
}

// MyRequests returns a copy of the user's request list.
func (r *Requests) MyRequests() []models.ServiceRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ServiceRequest, len(r.mine))
	copy(out, r.mine)
	return out
}

// AllRequests returns a copy of the admin request list.
func (r *Requests) AllRequests() []models.ServiceRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ServiceRequest, len(r.all))
	copy(out, r.all)
	return out
}
