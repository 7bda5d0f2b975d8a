// Package model defines domain entities for the application.
package model

// User is a blog author. ID is assigned by the store on insert.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
