package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloxtrade/internal/domain"
	"veloxtrade/internal/store"
)

func newUser(email string) *domain.User {
	now := time.Now()
	return &domain.User{
		ID:                 uuid.New(),
		Email:              email,
		PasswordHash:       "hash",
		SubscriptionStatus: domain.SubscriptionTrial,
		TrialDays:          7,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	repo := NewUserRepository(store.NewMemoryStore())
	ctx := context.Background()

	user := newUser("a@b.com")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestUserRepository_EmailLookupIsCaseInsensitive(t *testing.T) {
	repo := NewUserRepository(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("Trader@Example.com")))

	got, err := repo.GetByEmail(ctx, "trader@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Trader@Example.com", got.Email)
}

func TestUserRepository_CreateDuplicateEmailFails(t *testing.T) {
	repo := NewUserRepository(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("a@b.com")))

	err := repo.Create(ctx, newUser("A@B.com"))
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_PasswordHashSurvivesPersistence(t *testing.T) {
	repo := NewUserRepository(store.NewMemoryStore())
	ctx := context.Background()

	user := newUser("a@b.com")
	user.PasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	require.NotEmpty(t, got.PasswordHash, "hash must survive the store round trip")
	assert.Equal(t, user.PasswordHash, got.PasswordHash)
}

func TestUserRepository_UpdateReplacesEntry(t *testing.T) {
	repo := NewUserRepository(store.NewMemoryStore())
	ctx := context.Background()

	user := newUser("a@b.com")
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Renamed"
	user.SubscriptionStatus = domain.SubscriptionActive
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, domain.SubscriptionActive, got.SubscriptionStatus)
}

func TestUserRepository_UpdateUnknownUserFails(t *testing.T) {
	repo := NewUserRepository(store.NewMemoryStore())

	err := repo.Update(context.Background(), newUser("ghost@b.com"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
