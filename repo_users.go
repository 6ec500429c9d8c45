package authkit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunUserStore is the bun backed UserStore implementation.
type BunUserStore struct {
	db     *bun.DB
	logger Logger
}

// NewBunUserStore creates a new BunUserStore instance
func NewBunUserStore(db *bun.DB, logger Logger) *BunUserStore {
	if logger == nil {
		logger = defLogger{}
	}
	return &BunUserStore{db: db, logger: logger}
}

// Create inserts a new user. Emails are unique; registering a taken address
// returns ErrEmailTaken.
func (s *BunUserStore) Create(ctx context.Context, user *User) (*User, error) {
	email := NormalizeEmail(user.Email)

	exists, err := s.db.NewSelect().
		Model((*User)(nil)).
		Where("email = ?", email).
		Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	prepareUserDefaults(user)

	if _, err := s.db.NewInsert().Model(user).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetByID(ctx, user.ID)
}

// GetByID returns the user with the given id
func (s *BunUserStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user := new(User)
	err := s.db.NewSelect().
		Model(user).
		Where("usr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail returns the user with the given email
func (s *BunUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	user := new(User)
	err := s.db.NewSelect().
		Model(user).
		Where("usr.email = ?", NormalizeEmail(email)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByIdentifier resolves a user id or an email address to a user.
func (s *BunUserStore) GetByIdentifier(ctx context.Context, identifier string) (*User, error) {
	if id, err := uuid.Parse(identifier); err == nil {
		return s.GetByID(ctx, id)
	}
	return s.GetByEmail(ctx, identifier)
}

// ConfirmEmail marks the user's email confirmed and returns the updated row.
func (s *BunUserStore) ConfirmEmail(ctx context.Context, id uuid.UUID) (*User, error) {
	now := time.Now()
	_, err := s.db.NewUpdate().
		Model((*User)(nil)).
		Set("confirmed = ?", true).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm email: %w", err)
	}
	return s.GetByID(ctx, id)
}

// UpdatePassword replaces the user's password hash and returns the updated row.
func (s *BunUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) (*User, error) {
	now := time.Now()
	_, err := s.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetOrCreateFromProvider finds the account bound to a provider-verified
// email, creating a confirmed one on first sight. Provider accounts get an
// unguessable local password; they authenticate through the provider.
func (s *BunUserStore) GetOrCreateFromProvider(ctx context.Context, provider, name, email string) (*User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := RandomPasswordHash()
	if err != nil {
		return nil, err
	}

	record := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Confirmed:    true,
		Provider:     provider,
	}
	prepareUserDefaults(record)

	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create provider user: %w", err)
	}

	s.logger.Info("created account for %s via %s", record.Email, provider)
	return s.GetByID(ctx, record.ID)
}
