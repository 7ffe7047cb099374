package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/store"
)

// UserRepositoryImpl implements the UserRepository interface over the
// velox_users directory document.
type UserRepositoryImpl struct {
	store store.Store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(s store.Store) domain.UserRepository {
	return &UserRepositoryImpl{store: s}
}

// readDirectory loads the full user list. A missing or malformed document
// degrades to an empty directory rather than failing the caller.
func (r *UserRepositoryImpl) readDirectory(ctx context.Context) ([]*domain.User, error) {
	raw, err := r.store.Get(ctx, store.KeyUsers)
	if err == store.ErrKeyNotFound {
		return []*domain.User{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user directory: %w", err)
	}

	var users []*domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		log.Printf("WARNING: malformed user directory, treating as empty: %v", err)
		return []*domain.User{}, nil
	}
	return users, nil
}

func (r *UserRepositoryImpl) writeDirectory(ctx context.Context, users []*domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal user directory: %w", err)
	}
	if err := r.store.Set(ctx, store.KeyUsers, raw); err != nil {
		return fmt.Errorf("failed to write user directory: %w", err)
	}
	return nil
}

// Create appends a new user to the directory
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	users, err := r.readDirectory(ctx)
	if err != nil {
		return err
	}

	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.ErrEmailExists
		}
	}

	users = append(users, user)
	return r.writeDirectory(ctx, users)
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	users, err := r.readDirectory(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email, case-insensitively
func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	users, err := r.readDirectory(ctx)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Update replaces the directory entry matching user.ID
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	users, err := r.readDirectory(ctx)
	if err != nil {
		return err
	}

	for i, existing := range users {
		if existing.ID == user.ID {
			users[i] = user
			return r.writeDirectory(ctx, users)
		}
	}
	return domain.ErrUserNotFound
}

// GetAll retrieves the whole directory
func (r *UserRepositoryImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	return r.readDirectory(ctx)
}
