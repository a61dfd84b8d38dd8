package state

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"visaline/internal/api"
	"visaline/internal/models"
	"visaline/internal/notify"
	"visaline/internal/session"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Auth owns the Session: the signed-in user and bearer token. The token is
// set if and only if a user is set, except while the startup bootstrap is
// still pending.
type Auth struct {
	lifecycle
	api      *api.Client
	store    *session.Store
	notifier *notify.Channel
	log      zerolog.Logger

	initializing bool
	user         *models.User
	token        string

	deliveryAddress string
}

func NewAuth(client *api.Client, store *session.Store, notifier *notify.Channel, log zerolog.Logger) *Auth {
	return &Auth{
		api:          client,
		store:        store,
		notifier:     notifier,
		log:          log,
		initializing: true,
	}
}

type authEnvelope struct {
	Message string `json:"message"`
	Data    struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	} `json:"data"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *Auth) Login(ctx context.Context, input LoginInput) error {
	a.begin()

	var resp authEnvelope
	if err := a.api.Post(ctx, "/auth/login", input, &resp); err != nil {
		return a.reject(a.notifier, err)
	}

	a.setSession(resp.Data.User, resp.Data.Token)
	a.notifier.Success("Welcome back, " + resp.Data.User.FirstName + "!")
	return nil
}

type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

func (a *Auth) Register(ctx context.Context, input RegisterInput) error {
	a.begin()

	var resp authEnvelope
	if err := a.api.Post(ctx, "/auth/register", input, &resp); err != nil {
		return a.reject(a.notifier, err)
	}

	a.setSession(resp.Data.User, resp.Data.Token)
	a.notifier.Success("Welcome, " + resp.Data.User.FirstName + "!")
	return nil
}

// LoadFromStorage restores a persisted session at startup. An absent user
// or token resolves to "no session" without error; this gates the first
// render, so it never toasts.
func (a *Auth) LoadFromStorage() {
	user, token, ok := a.store.Load()

	a.mu.Lock()
	a.initializing = false
	if ok {
		u := user
		a.user = &u
		a.token = token
	}
	a.mu.Unlock()
}

// Logout is local-only: it clears the in-memory session and the persisted
// one, and issues no network call. In-flight responses that settle later
// still reduce into their slices.
func (a *Auth) Logout() {
	a.mu.Lock()
	a.user = nil
	a.token = ""
	a.loading = false
	a.err = ""
	a.mu.Unlock()

	a.store.Clear()
	a.notifier.Success("Logged out")
}

type UpdateProfileInput struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

func (a *Auth) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	a.begin()

	var resp authEnvelope
	if err := a.api.Put(ctx, "/auth/update-profile", input, &resp); err != nil {
		return a.reject(a.notifier, err)
	}

	a.mu.Lock()
	u := resp.Data.User
	a.user = &u
	token := a.token
	a.loading = false
	a.err = ""
	a.mu.Unlock()

	a.store.Save(resp.Data.User, token)
	a.notifier.Success("Profile updated")
	return nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"-"`
}

func (a *Auth) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		a.notifier.Warning("Passwords do not match")
		return ErrPasswordMismatch
	}

	a.begin()

	var resp struct {
		Message string `json:"message"`
	}
	if err := a.api.Put(ctx, "/auth/change-password", input, &resp); err != nil {
		return a.reject(a.notifier, err)
	}

	a.settle()
	a.notifier.Success("Password changed")
	return nil
}

func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	a.begin()

	body := map[string]string{"email": email}
	if err := a.api.Post(ctx, "/auth/forgot-password", body, nil); err != nil {
		return a.reject(a.notifier, err)
	}

	a.settle()
	a.notifier.Success("Reset instructions sent to " + email)
	return nil
}

type ResetPasswordInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (a *Auth) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.Password != input.ConfirmPassword {
		a.notifier.Warning("Passwords do not match")
		return ErrPasswordMismatch
	}

	a.begin()

	if err := a.api.Post(ctx, "/auth/reset-password", input, nil); err != nil {
		return a.reject(a.notifier, err)
	}

	a.settle()
	a.notifier.Success("Password reset, you can sign in now")
	return nil
}

// FetchDeliveryAddress loads the office address documents are couriered to.
func (a *Auth) FetchDeliveryAddress(ctx context.Context) (string, error) {
	a.begin()

	var resp struct {
		Data struct {
			Address string `json:"address"`
		} `json:"data"`
	}
	if err := a.api.Get(ctx, "/auth/delivery-address", nil, &resp); err != nil {
		return "", a.reject(a.notifier, err)
	}

	a.mu.Lock()
	a.deliveryAddress = resp.Data.Address
	a.loading = false
	a.err = ""
	a.mu.Unlock()
	return resp.Data.Address, nil
}

func (a *Auth) setSession(user models.User, token string) {
	a.mu.Lock()
	u := user
	a.user = &u
	a.token = token
	a.loading = false
	a.err = ""
	a.mu.Unlock()

	a.store.Save(user, token)
}

func (a *Auth) settle() {
	a.mu.Lock()
	a.loading = false
	a.err = ""
	a.mu.Unlock()
}

// User returns a copy of the signed-in user, nil when anonymous.
func (a *Auth) User() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *Auth) SignedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

// Initializing reports whether the startup bootstrap has not settled yet.
func (a *Auth) Initializing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initializing
}

func (a *Auth) DeliveryAddress() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deliveryAddress
}
