package social

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotCommentOwner = errors.New("only the author can delete a comment")
)

type Post struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	Likes      int       `json:"likes"`
	LikedBy    []string  `json:"likedBy"`
	Comments   int       `json:"comments"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page is one slice of the feed, newest first.
type Page struct {
	Posts   []Post `json:"posts"`
	HasMore bool   `json:"hasMore"`
}

// LikeState is the outcome of a like toggle as seen by the caller.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}
