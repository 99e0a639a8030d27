package domain

import (
	"time"
)

// Group is a named community posts may optionally belong to. Groups are
// created administratively; the application only reads them.
type Group struct {
	ID          string
	Title       string
	Slug        string
	Description string
}

type Post struct {
	ID        string
	Text      string
	Image     string
	Author    User
	Group     *Group
	CreatedAt time.Time
}

type Comment struct {
	ID        string
	PostID    string
	Author    User
	Text      string
	CreatedAt time.Time
}

// Follow is a directed subscription: UserID follows AuthorID.
type Follow struct {
	ID       string
	UserID   string
	AuthorID string
}
