package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/blogapi/blogapi/internal/handler/dto"
	"github.com/blogapi/blogapi/internal/metrics"
	"github.com/blogapi/blogapi/internal/model"
	"github.com/blogapi/blogapi/internal/validation"
)

const (
	msgUsersNotRetrieved = "The users information could not be retrieved."
	msgUserNotFound      = "The user with the specified ID does not exist."
	msgUserNotRetrieved  = "The user information could not be retrieved."
	msgUserNameTooLong   = "The username must be under 129 characters."
	msgUserAdded         = "User was added successfully!"
	msgUserNotSaved      = "There was an error while saving the user to the database."
	msgUserDeleted       = "The user was deleted successfully!"
	msgUserNotRemoved    = "The user could not be removed."
	msgUserUpdated       = "The user was successfully updated!"
	msgUserNotModified   = "The user information could not be modified."
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	store   UserStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store UserStore, recorder metrics.Recorder, logger *slog.Logger) *UserHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		store:   store,
		metrics: recorder,
		logger:  logger,
	}
}

// List handles GET /api/users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	users, err := h.store.Users(r.Context())
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "list_users", err, msgUsersNotRetrieved)
		return
	}

	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// Posts handles GET /api/users/{id}/posts.
func (h *UserHandler) Posts(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	start := time.Now()
	posts, err := h.store.UserPosts(r.Context(), id)
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "list_user_posts", err, msgUserNotRetrieved)
		return
	}

	if len(posts) == 0 {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	normalized, err := req.Normalize()
	if err != nil {
		h.logger.Warn("user_rejected", "op", "insert_user", "error", err)
		writeError(w, http.StatusInternalServerError, msgUserNotSaved)
		return
	}

	if err := normalized.Validate(); err != nil {
		h.logger.Info("user_rejected",
			"op", "insert_user",
			"fields", validation.FieldErrors(err),
		)
		if validation.HasTag(err, validation.TagUTF16Max) {
			writeMessage(w, http.StatusLengthRequired, msgUserNameTooLong)
			return
		}
		writeError(w, http.StatusInternalServerError, msgUserNotSaved)
		return
	}

	start := time.Now()
	user, err := h.store.InsertUser(r.Context(), normalized.Model())
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "insert_user", err, msgUserNotSaved)
		return
	}

	h.metrics.IncUserCreated()
	h.logger.Info("user_created", "user_id", user.ID)

	writeJSON(w, http.StatusCreated, dto.UserResponse{User: user, Message: msgUserAdded})
}

// Update handles PUT /api/users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	normalized, err := req.Normalize()
	if err != nil {
		h.logger.Warn("user_rejected", "op", "update_user", "error", err)
		writeError(w, http.StatusInternalServerError, msgUserNotModified)
		return
	}

	id, ok := parseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	start := time.Now()
	users, err := h.store.UpdateUser(r.Context(), id, normalized.Model())
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "update_user", err, msgUserNotModified)
		return
	}

	if len(users) == 0 {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	h.metrics.IncUserUpdated()
	h.logger.Info("user_updated", "user_id", id)

	writeJSON(w, http.StatusOK, dto.UsersResponse{User: users, Message: msgUserUpdated})
}

// Delete handles DELETE /api/users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	start := time.Now()
	users, err := h.store.RemoveUser(r.Context(), id)
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "remove_user", err, msgUserNotRemoved)
		return
	}

	if len(users) == 0 {
		writeMessage(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	h.metrics.IncUserDeleted()
	h.logger.Info("user_deleted", "user_id", id)

	writeJSON(w, http.StatusOK, dto.UsersResponse{User: users, Message: msgUserDeleted})
}

// storeFailure logs and counts a failed store call, then writes a 500 with message.
func (h *UserHandler) storeFailure(w http.ResponseWriter, op string, err error, message string) {
	h.metrics.IncStoreFailure(op)
	h.logger.Error("store call failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, message)
}
