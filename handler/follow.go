package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"quill/domain"
	"quill/store"
)

// GetFollowIndex renders the caller's personal feed: posts by every author
// they follow, newest first.
func (h *Handler) GetFollowIndex(c echo.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return echo.ErrUnauthorized
	}

	posts, err := h.Store.FeedPosts(user.ID)
	if err != nil {
		return err
	}
	data := h.listData(c, "Posts from authors you follow", posts)
	return c.Render(http.StatusOK, "follow.html", data)
}

// Follow subscribes the caller to an author. Following yourself is a no-op,
// and repeated calls leave a single subscription.
func (h *Handler) Follow(c echo.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return echo.ErrUnauthorized
	}

	author, err := h.Store.UserByUsername(c.Param("username"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	if author.ID != user.ID {
		follow := domain.Follow{
			ID:       uuid.NewString(),
			UserID:   user.ID,
			AuthorID: author.ID,
		}
		if err := h.Store.CreateFollow(follow); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// Unfollow removes the caller's subscription to an author. Unfollowing
// someone you don't follow is a not-found condition.
func (h *Handler) Unfollow(c echo.Context) error {
	user := h.currentUser(c)
	if user == nil {
		return echo.ErrUnauthorized
	}

	author, err := h.Store.UserByUsername(c.Param("username"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	if err := h.Store.DeleteFollow(user.ID, author.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return c.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}
