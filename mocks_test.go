package authkit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func testConfig() *Config {
	return &Config{
		Port:         3000,
		Domain:       "example.com",
		CookieName:   "cookie_refresh",
		CookieSecret: "test-cookie-secret",
		Access: TokenConfig{
			Secret: "test-access-secret",
			TTL:    10 * time.Minute,
		},
		Refresh: TokenConfig{
			Secret: "test-refresh-secret",
			TTL:    7 * 24 * time.Hour,
		},
		Confirmation: TokenConfig{
			Secret: "test-confirmation-secret",
			TTL:    time.Hour,
		},
		ResetPassword: TokenConfig{
			Secret: "test-reset-secret",
			TTL:    30 * time.Minute,
		},
		Testing: true,
	}
}

func testUser() *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Name:         "jane doe",
		Email:        "jane@example.com",
		PasswordHash: "",
		Confirmed:    true,
		Role:         RoleUser,
		CreatedAt:    &now,
		UpdatedAt:    &now,
	}
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *User) (*User, error) {
	args := m.Called(ctx, user)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	args := m.Called(ctx, identifier)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) ConfirmEmail(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error) {
	args := m.Called(ctx, id, passwordHash)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetOrCreateFromProvider(ctx context.Context, provider, name, email string) (*User, error) {
	args := m.Called(ctx, provider, name, email)
	if u := args.Get(0); u != nil {
		return u.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeMailer records delivered tokens so tests can redeem them.
type fakeMailer struct {
	mu            sync.Mutex
	confirmations []string
	resets        []string
	err           error
}

func (f *fakeMailer) SendConfirmationEmail(_ context.Context, _ *User, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, token)
	return nil
}

func (f *fakeMailer) SendResetPasswordEmail(_ context.Context, _ *User, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, token)
	return nil
}

func (f *fakeMailer) confirmationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.confirmations)
}

func (f *fakeMailer) lastConfirmation() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.confirmations) == 0 {
		return ""
	}
	return f.confirmations[len(f.confirmations)-1]
}

func (f *fakeMailer) lastReset() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.resets) == 0 {
		return ""
	}
	return f.resets[len(f.resets)-1]
}
