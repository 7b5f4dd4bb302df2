package model

import (
	"errors"
	"time"
)

// Post is a feed entry. Author name and avatar are captured at creation
// time and intentionally not kept in sync with later profile edits.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user"`
	Text      string    `db:"text" json:"text"`
	Name      string    `db:"name" json:"name"`
	Avatar    string    `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"date"`

	// Joined fields, newest first
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
}

// Like is a single user's like on a post. A user appears at most once.
type Like struct {
	UserID int64 `db:"user_id" json:"user"`
}

// Comment is a sub-record of a post with its own generated identifier.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"-"`
	UserID    int64     `db:"user_id" json:"user"`
	Text      string    `db:"text" json:"text"`
	Name      string    `db:"name" json:"name"`
	Avatar    string    `db:"avatar" json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"date"`
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Text string `json:"text"`
}

// CreateCommentRequest is the request body for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrNotPostOwner     = errors.New("not the owner of this post")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrNotCommentAuthor = errors.New("not the author of this comment")
)
