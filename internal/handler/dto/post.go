package dto

import (
	"github.com/blogapi/blogapi/internal/model"
	"github.com/blogapi/blogapi/internal/validation"
)

// PostRequest represents the request body for creating or updating a post.
// Both fields must be non-zero.
type PostRequest struct {
	Text   string `json:"text" validate:"required"`
	UserID int64  `json:"userId" validate:"required"`
}

// Validate checks that text and userId are present.
func (r PostRequest) Validate() error {
	return validation.Struct(r)
}

// Model converts the request into a Post to persist.
func (r PostRequest) Model() model.Post {
	return model.Post{Text: r.Text, UserID: r.UserID}
}

var _ validation.Validatable = PostRequest{}
