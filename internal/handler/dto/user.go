// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/blogapi/blogapi/internal/model"
	"github.com/blogapi/blogapi/internal/validation"
)

// MaxNameLength is the longest user name accepted on create, counted in
// UTF-16 code units after upper-casing.
const MaxNameLength = 128

// ErrNameMissing is returned by Normalize when the body has no name.
var ErrNameMissing = errors.New("name is required")

// UserRequest represents the request body for creating or updating a user.
type UserRequest struct {
	Name *string `json:"name"`
}

// Normalize returns a new payload with the name upper-cased using full
// Unicode case mapping ("ß" becomes "SS"). The receiver is left untouched.
func (r UserRequest) Normalize() (NormalizedUser, error) {
	if r.Name == nil {
		return NormalizedUser{}, ErrNameMissing
	}
	// Casers keep state and must not be shared between goroutines.
	return NormalizedUser{Name: cases.Upper(language.Und).String(*r.Name)}, nil
}

// NormalizedUser is a user payload after normalization.
type NormalizedUser struct {
	Name string `json:"name" validate:"utf16max=128"`
}

// Validate checks the name length bound.
func (u NormalizedUser) Validate() error {
	return validation.Struct(u)
}

// Model converts the payload into a User to persist.
func (u NormalizedUser) Model() model.User {
	return model.User{Name: u.Name}
}

// UserResponse is returned when a single user was created.
type UserResponse struct {
	User    *model.User `json:"user"`
	Message string      `json:"message"`
}

// UsersResponse is returned for updates and deletes, carrying every affected row.
type UsersResponse struct {
	User    []model.User `json:"user"`
	Message string       `json:"message"`
}

var _ validation.Validatable = NormalizedUser{}
