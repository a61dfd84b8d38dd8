package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"visaline/internal/api"
	"visaline/internal/models"
	"visaline/internal/notify"
)

// Catalog owns the service list. Fetch replaces it wholesale; create,
// update, toggle and delete patch individual entries in place.
type Catalog struct {
	lifecycle
	api      *api.Client
	notifier *notify.Channel
	log      zerolog.Logger

	services []models.Service
}

func NewCatalog(client *api.Client, notifier *notify.Channel, log zerolog.Logger) *Catalog {
	return &Catalog{api: client, notifier: notifier, log: log}
}

type serviceListEnvelope struct {
	Data []models.Service `json:"data"`
}

type serviceEnvelope struct {
	Message string         `json:"message"`
	Data    models.Service `json:"data"`
}

func (c *Catalog) Fetch(ctx context.Context) error {
	c.begin()

	var resp serviceListEnvelope
	if err := c.api.Get(ctx, "/services/get-services", nil, &resp); err != nil {
		return c.reject(c.notifier, err)
	}

	c.mu.Lock()
	c.services = resp.Data
	c.loading = false
	c.err = ""
	c.mu.Unlock()
	return nil
}

// Create validates the draft locally, then submits it. Validation failures
// toast as warnings and never reach the network.
func (c *Catalog) Create(ctx context.Context, draft *ServiceDraft) error {
	if err := draft.Validate(); err != nil {
		c.notifier.Warning(err.Error())
		return err
	}

	c.begin()

	var resp serviceEnvelope
	if err := c.api.Post(ctx, "/services/create-service", draft, &resp); err != nil {
		return c.reject(c.notifier, err)
	}

	c.mu.Lock()
	c.services = append(c.services, resp.Data)
	c.loading = false
	c.err = ""
	c.mu.Unlock()

	c.notifier.Success("Service \"" + resp.Data.Name + "\" created")
	return nil
}

func (c *Catalog) Update(ctx context.Context, id string, draft *ServiceDraft) error {
	if err := draft.Validate(); err != nil {
		c.notifier.Warning(err.Error())
		return err
	}

	c.begin()

	var resp serviceEnvelope
	if err := c.api.Put(ctx, "/services/update-service/"+id, draft, &resp); err != nil {
		return c.reject(c.notifier, err)
	}

	c.patch(resp.Data)
	c.notifier.Success("Service updated")
	return nil
}

func (c *Catalog) Delete(ctx context.Context, id string) error {
	c.begin()

	if err := c.api.Delete(ctx, "/services/delete-service/"+id, nil); err != nil {
		return c.reject(c.notifier, err)
	}

	c.mu.Lock()
	kept := c.services[:0]
	for _, svc := range c.services {
		if svc.ID != id {
			kept = append(kept, svc)
		}
	}
	c.services = kept
	c.loading = false
	c.err = ""
	c.mu.Unlock()

	c.notifier.Success("Service deleted")
	return nil
}

func (c *Catalog) ToggleStatus(ctx context.Context, id string) error {
	c.begin()

	var resp serviceEnvelope
	if err := c.api.Patch(ctx, "/services/toggle-status/"+id, nil, &resp); err != nil {
		return c.reject(c.notifier, err)
	}

	c.patch(resp.Data)

	label := "deactivated"
	if resp.Data.IsActive {
		label = "activated"
	}
	c.notifier.Success("Service \"" + resp.Data.Name + "\" " + label)
	return nil
}

func (c *Catalog) patch(updated models.Service) {
	c.mu.Lock()
	for i := range c.services {
		if c.services[i].ID == updated.ID {
			c.services[i] = updated
			break
		}
	}
	c.loading = false
	c.err = ""
	c.mu.Unlock()
}

// Services returns a copy of the catalog list.
func (c *Catalog) Services() []models.Service {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Service, len(c.services))
	copy(out, c.services)
	return out
}

func (c *Catalog) Service(id string) (models.Service, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, svc := range c.services {
		if svc.ID == id {
			return svc, true
		}
	}
	return models.Service{}, false
}

var (
	ErrDuplicateSubService = errors.New("a sub-service with that name already exists")
	ErrDuplicateField      = errors.New("a field with that name already exists")
	ErrEmptyLabel          = errors.New("field label must not be empty")
	ErrUnknownSubService   = errors.New("no such sub-service in the draft")
)

// ServiceDraft is the screen-local form a service is composed in before
// submission. Its add methods enforce the client-side uniqueness rules so
// an invalid draft can never reach the server.
type ServiceDraft struct {
	Name                    string              `json:"name"`
	Description             string              `json:"description,omitempty"`
	ImageURL                string              `json:"imageUrl,omitempty"`
	EstimatedProcessingDays int                 `json:"estimatedProcessingDays,omitempty"`
	RequiredDocuments       []string            `json:"requiredDocuments,omitempty"`
	Airlines                []string            `json:"airlines,omitempty"`
	SubServicesUIType       string              `json:"subServicesUiType,omitempty"`
	SubServices             []models.SubService `json:"subServices,omitempty"`
}

// AddSubService appends a sub-service. Names are compared trimmed and
// case-insensitively.
func (d *ServiceDraft) AddSubService(name string) error {
	name = trimmed(name)
	if name == "" {
		return fmt.Errorf("sub-service name must not be empty")
	}
	for _, sub := range d.SubServices {
		if foldEqual(sub.Name, name) {
			return ErrDuplicateSubService
		}
	}
	d.SubServices = append(d.SubServices, models.SubService{Name: name, IsActive: true})
	return nil
}

// AddFormField appends a field to the named sub-service. The field key is
// the slug of its label and must be unique within the sub-service.
func (d *ServiceDraft) AddFormField(subService, label string, fieldType models.FieldType, required bool, options []string) error {
	key := Slug(label)
	if key == "" {
		return ErrEmptyLabel
	}

	for i := range d.SubServices {
		if !foldEqual(d.SubServices[i].Name, subService) {
			continue
		}
		for _, f := range d.SubServices[i].FormFields {
			if f.Name == key {
				return ErrDuplicateField
			}
		}
		d.SubServices[i].FormFields = append(d.SubServices[i].FormFields, models.FormField{
			Label:    label,
			Name:     key,
			Type:     fieldType,
			Required: required,
			Options:  options,
		})
		return nil
	}
	return ErrUnknownSubService
}

// Validate re-checks the whole draft, covering drafts assembled outside
// the add methods.
func (d *ServiceDraft) Validate() error {
	if trimmed(d.Name) == "" {
		return fmt.Errorf("service name must not be empty")
	}

	seenSubs := make(map[string]struct{}, len(d.SubServices))
	for _, sub := range d.SubServices {
		folded := fold(trimmed(sub.Name))
		if _, dup := seenSubs[folded]; dup {
			return ErrDuplicateSubService
		}
		seenSubs[folded] = struct{}{}

		seenFields := make(map[string]struct{}, len(sub.FormFields))
		for _, f := range sub.FormFields {
			if f.Name == "" {
				return ErrEmptyLabel
			}
			if _, dup := seenFields[f.Name]; dup {
				return ErrDuplicateField
			}
			seenFields[f.Name] = struct{}{}
		}
	}
	return nil
}
