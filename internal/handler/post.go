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
	msgPostsNotRetrieved = "The post information could not be retrieved."
	msgPostTextMissing   = "Please provide text to your post."
	msgPostNotSaved      = "There was an error saving your post."
	msgPostNotFound      = "The post with that ID does not exist."
	msgPostNotRemoved    = "The post could not be removed."
	msgPostFieldsMissing = "Please provide a userId and text for the post."
	msgPostIDNotFound    = "The post with the specified ID does not exist."
	msgPostNotModified   = "The post information could not be modified."
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	store   PostStore
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(store PostStore, recorder metrics.Recorder, logger *slog.Logger) *PostHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostHandler{
		store:   store,
		metrics: recorder,
		logger:  logger,
	}
}

// List handles GET /api/posts.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	posts, err := h.store.Posts(r.Context())
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "list_posts", err, msgPostsNotRetrieved)
		return
	}

	if posts == nil {
		posts = []model.Post{}
	}
	writeJSON(w, http.StatusOK, posts)
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Info("post_rejected",
			"op", "insert_post",
			"fields", validation.FieldErrors(err),
		)
		writeError(w, http.StatusBadRequest, msgPostTextMissing)
		return
	}

	start := time.Now()
	post, err := h.store.InsertPost(r.Context(), req.Model())
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "insert_post", err, msgPostNotSaved)
		return
	}

	h.metrics.IncPostCreated()
	h.logger.Info("post_created", "post_id", post.ID, "user_id", post.UserID)

	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Info("post_rejected",
			"op", "update_post",
			"fields", validation.FieldErrors(err),
		)
		writeError(w, http.StatusBadRequest, msgPostFieldsMissing)
		return
	}

	id, ok := parseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgPostIDNotFound)
		return
	}

	start := time.Now()
	posts, err := h.store.UpdatePost(r.Context(), id, req.Model())
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "update_post", err, msgPostNotModified)
		return
	}

	if len(posts) == 0 {
		writeMessage(w, http.StatusNotFound, msgPostIDNotFound)
		return
	}

	h.metrics.IncPostUpdated()
	h.logger.Info("post_updated", "post_id", id)

	writeJSON(w, http.StatusOK, posts)
}

// Delete handles DELETE /api/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgPostNotFound)
		return
	}

	start := time.Now()
	posts, err := h.store.RemovePost(r.Context(), id)
	timeStore(h.metrics, start)
	if err != nil {
		h.storeFailure(w, "remove_post", err, msgPostNotRemoved)
		return
	}

	if len(posts) == 0 {
		writeMessage(w, http.StatusNotFound, msgPostNotFound)
		return
	}

	h.metrics.IncPostDeleted()
	h.logger.Info("post_deleted", "post_id", id)

	writeJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) storeFailure(w http.ResponseWriter, op string, err error, message string) {
	h.metrics.IncStoreFailure(op)
	h.logger.Error("store call failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, message)
}
