package datastore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	created := mustCreateUser(t, repo, "ann@x.com")

	got, err := repo.GetUserByEmail(context.Background(), "ann@x.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Name, got.Name)
	require.Equal(t, created.Email, got.Email)
	require.Equal(t, created.PasswordHash, got.PasswordHash)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	first := mustCreateUser(t, repo, "dup@x.com")

	second := *first
	second.ID = "b8f7f3a2-1c4d-4e5f-9a6b-7c8d9e0f1a2b"
	err := repo.CreateUser(context.Background(), &second)
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_GetUnknownEmail(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetUserByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}
