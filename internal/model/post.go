package model

// Post is a single blog post owned by a User.
type Post struct {
	ID     int64  `json:"id"`
	Text   string `json:"text"`
	UserID int64  `json:"userId"`
}

// UserPost is a post as listed under its author, carrying the author's name.
type UserPost struct {
	ID       int64  `json:"id"`
	Text     string `json:"text"`
	UserID   int64  `json:"userId"`
	PostedBy string `json:"postedBy"`
}
