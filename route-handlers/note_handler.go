package routehandlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/coreybb/scribe/auth"
	"github.com/coreybb/scribe/datastore"
	"github.com/coreybb/scribe/models"
	"github.com/coreybb/scribe/webutil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// NoteHandler holds dependencies for note route handlers. Every handler
// takes its owner identity from the request context, never from the payload.
type NoteHandler struct {
	Repo *datastore.NoteRepository
}

func NewNoteHandler(repo *datastore.NoteRepository) *NoteHandler {
	return &NoteHandler{Repo: repo}
}

// createNoteRequest defines the expected structure for creating a note.
type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
	Audio   string `json:"audio,omitempty"`
}

// updateNoteRequest defines the expected structure for updating a note.
// Only these five fields are updatable; with DisallowUnknownFields on the
// decoder, attempts to rewrite userId, createdAt or id are rejected outright.
type updateNoteRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	IsFavorite *bool   `json:"isFavorite"`
	Image      *string `json:"image"`
	Audio      *string `json:"audio"`
}

// HandleCreateNote creates a new note owned by the authenticated user.
func (h *NoteHandler) HandleCreateNote(w http.ResponseWriter, r *http.Request) error {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	var req createNoteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	title := req.Title
	if strings.TrimSpace(title) == "" {
		title = models.DefaultNoteTitle
	}

	newNote := models.Note{
		ID:         uuid.NewString(),
		UserID:     identity.UserID,
		CreatedAt:  time.Now().UTC(),
		Title:      title,
		Content:    req.Content,
		IsFavorite: false,
		Image:      req.Image,
		Audio:      req.Audio,
	}

	if err := h.Repo.CreateNote(r.Context(), &newNote); err != nil {
		return webutil.ErrInternalServerWrap("Failed to create note", err)
	}

	log.Printf("INFO: Note created: ID=%s, UserID=%s", newNote.ID, newNote.UserID)
	webutil.RespondWithJSON(w, http.StatusCreated, newNote)
	return nil
}

// HandleGetNotes returns all notes owned by the authenticated user, newest
// first. The response is always a JSON array, possibly empty.
func (h *NoteHandler) HandleGetNotes(w http.ResponseWriter, r *http.Request) error {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	notes, err := h.Repo.GetNotesByUserID(r.Context(), identity.UserID)
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to fetch notes", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, notes)
	return nil
}

// HandleUpdateNote applies a partial update to the note matching both the
// path ID and the authenticated owner, and returns the post-update record.
// A wrong ID and someone else's note are both a 404.
func (h *NoteHandler) HandleUpdateNote(w http.ResponseWriter, r *http.Request) error {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	noteID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(noteID); err != nil {
		return webutil.ErrBadRequest("Invalid note ID format")
	}

	var req updateNoteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	update := datastore.NoteUpdate{
		Title:      req.Title,
		Content:    req.Content,
		IsFavorite: req.IsFavorite,
		Image:      req.Image,
		Audio:      req.Audio,
	}

	updatedNote, err := h.Repo.UpdateNote(r.Context(), noteID, identity.UserID, update)
	if err != nil {
		if errors.Is(err, datastore.ErrNoteNotFound) {
			return webutil.ErrNotFound("Note not found")
		}
		return webutil.ErrInternalServerWrap("Failed to update note", err)
	}

	log.Printf("INFO: Note updated: ID=%s, UserID=%s", updatedNote.ID, updatedNote.UserID)
	webutil.RespondWithJSON(w, http.StatusOK, updatedNote)
	return nil
}

// HandleDeleteNote removes the note matching both the path ID and the
// authenticated owner. Deletion is terminal: repeating it is a 404.
func (h *NoteHandler) HandleDeleteNote(w http.ResponseWriter, r *http.Request) error {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return webutil.ErrUnauthorized("")
	}

	noteID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(noteID); err != nil {
		return webutil.ErrBadRequest("Invalid note ID format")
	}

	if err := h.Repo.DeleteNote(r.Context(), noteID, identity.UserID); err != nil {
		if errors.Is(err, datastore.ErrNoteNotFound) {
			return webutil.ErrNotFound("Note not found")
		}
		return webutil.ErrInternalServerWrap("Failed to delete note", err)
	}

	log.Printf("INFO: Note deleted: ID=%s, UserID=%s", noteID, identity.UserID)
	webutil.RespondWithMessage(w, http.StatusOK, "Note deleted successfully")
	return nil
}
