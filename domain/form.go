package domain

import (
	"strings"
)

// FieldErrors maps a form field name to a human-readable message.
type FieldErrors map[string]string

// PostForm is the validated shape of a post submission. GroupID and Image
// are optional; group existence is checked against the store by the caller.
type PostForm struct {
	Text    string
	GroupID string
	Image   string
}

func (f PostForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}

type CommentForm struct {
	Text string
}

func (f CommentForm) Validate() FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(f.Text) == "" {
		errs["text"] = "Text is required"
	}
	return errs
}
