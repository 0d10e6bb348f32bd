package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/coreybb/scribe/models"
)

// The repositories run against an in-memory sqlite database in tests. The
// $N placeholder syntax is native to sqlite, so the Postgres-flavored SQL
// runs unchanged.
const testSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	created_at TIMESTAMP NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL
);
CREATE TABLE notes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	is_favorite BOOLEAN NOT NULL,
	image TEXT,
	audio TEXT
);
`

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func mustCreateUser(t *testing.T, repo *UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$not-a-real-hash",
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func mustCreateNote(t *testing.T, repo *NoteRepository, userID, title string, createdAt time.Time) *models.Note {
	t.Helper()
	note := &models.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: createdAt,
		Title:     title,
		Content:   "content of " + title,
	}
	require.NoError(t, repo.CreateNote(context.Background(), note))
	return note
}
