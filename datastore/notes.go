package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/coreybb/scribe/models"
	"github.com/google/uuid"
)

// NoteRepository handles database operations for notes. Every read, update
// and delete is scoped by both the note ID and the owning user ID: a note ID
// alone never authorizes access.
type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// NoteUpdate carries a partial set of note fields for UpdateNote. Nil fields
// are left untouched. The owner and creation timestamp are deliberately not
// representable here.
type NoteUpdate struct {
	Title      *string
	Content    *string
	IsFavorite *bool
	Image      *string
	Audio      *string
}

// CreateNote inserts a new note record for its owner.
func (r *NoteRepository) CreateNote(ctx context.Context, note *models.Note) error {
	if _, err := uuid.Parse(note.ID); err != nil {
		return fmt.Errorf("invalid note ID format: %w", err)
	}
	if _, err := uuid.Parse(note.UserID); err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}
	if note.CreatedAt.IsZero() {
		return fmt.Errorf("note CreatedAt timestamp must be set")
	}

	query := `
		INSERT INTO notes (id, user_id, created_at, title, content, is_favorite, image, audio)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.UserID,
		note.CreatedAt,
		note.Title,
		note.Content,
		note.IsFavorite,
		NewNullString(note.Image),
		NewNullString(note.Audio),
	)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

// GetNoteByID retrieves a single note matching both the note ID and the
// owning user ID. Returns ErrNoteNotFound when no such note exists; a wrong
// ID and a wrong owner are indistinguishable to the caller.
func (r *NoteRepository) GetNoteByID(ctx context.Context, noteID, userID string) (*models.Note, error) {
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, fmt.Errorf("invalid note ID format: %w", err)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	query := `
		SELECT id, user_id, created_at, title, content, is_favorite, image, audio
		FROM notes
		WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRowContext(ctx, query, noteID, userID)
	note, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note by ID: %w", err)
	}
	return note, nil
}

// GetNotesByUserID retrieves all notes owned by the given user, newest
// first. Returns an empty (never nil) slice when the user has no notes.
func (r *NoteRepository) GetNotesByUserID(ctx context.Context, userID string) ([]models.Note, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	query := `
		SELECT id, user_id, created_at, title, content, is_favorite, image, audio
		FROM notes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes for user %s: %w", userID, err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note row for user %s: %w", userID, err)
		}
		notes = append(notes, *note)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating note rows for user %s: %w", userID, err)
	}

	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// UpdateNote applies the non-nil fields of update to the note matching both
// noteID and userID, and returns the post-update record. Returns
// ErrNoteNotFound when no such note exists. An update with no fields set is
// a no-op that returns the current record.
func (r *NoteRepository) UpdateNote(ctx context.Context, noteID, userID string, update NoteUpdate) (*models.Note, error) {
	if _, err := uuid.Parse(noteID); err != nil {
		return nil, fmt.Errorf("invalid note ID format: %w", err)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user ID format: %w", err)
	}

	var assignments []string
	var args []any
	addAssignment := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		addAssignment("title", *update.Title)
	}
	if update.Content != nil {
		addAssignment("content", *update.Content)
	}
	if update.IsFavorite != nil {
		addAssignment("is_favorite", *update.IsFavorite)
	}
	if update.Image != nil {
		addAssignment("image", NewNullString(*update.Image))
	}
	if update.Audio != nil {
		addAssignment("audio", NewNullString(*update.Audio))
	}

	if len(assignments) == 0 {
		return r.GetNoteByID(ctx, noteID, userID)
	}

	args = append(args, noteID, userID)
	query := fmt.Sprintf(
		"UPDATE notes SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(assignments, ", "), len(args)-1, len(args),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update note %s: %w", noteID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected for note update %s: %w", noteID, err)
	}
	if rowsAffected == 0 {
		return nil, ErrNoteNotFound
	}

	return r.GetNoteByID(ctx, noteID, userID)
}

// DeleteNote removes the note matching both noteID and userID. Returns
// ErrNoteNotFound when no such note exists, including when it was already
// deleted.
func (r *NoteRepository) DeleteNote(ctx context.Context, noteID, userID string) error {
	if _, err := uuid.Parse(noteID); err != nil {
		return fmt.Errorf("invalid note ID format: %w", err)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("invalid user ID format: %w", err)
	}

	query := `DELETE FROM notes WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, noteID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for note delete %s: %w", noteID, err)
	}
	if rowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// scanNote scans a note row through either sql.Row.Scan or sql.Rows.Scan.
func scanNote(scan func(dest ...any) error) (*models.Note, error) {
	var n models.Note
	var image, audio sql.NullString
	err := scan(
		&n.ID,
		&n.UserID,
		&n.CreatedAt,
		&n.Title,
		&n.Content,
		&n.IsFavorite,
		&image,
		&audio,
	)
	if err != nil {
		return nil, err
	}
	if image.Valid {
		n.Image = image.String
	}
	if audio.Valid {
		n.Audio = audio.String
	}
	return &n, nil
}

func NewNullString(s string) sql.NullString {
	if len(s) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{
		String: s,
		Valid:  true,
	}
}
