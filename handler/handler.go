package handler

import (
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"quill/cache"
	"quill/domain"
	"quill/store"
)

// PageSize is the fixed number of items per paginated page.
const PageSize = 10

type Handler struct {
	Store        *store.Store
	Cache        *cache.PageCache
	JWTSecret    string
	EnableSignup bool
	Environment  string
	MediaDir     string
}

// Register wires every route onto the Echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.GetPosts)
	e.GET("/group/:slug/", h.GetGroupPosts)
	e.GET("/profile/:username/", h.GetProfile)
	e.GET("/posts/:id/", h.GetPostDetail)

	e.GET("/create/", h.GetNewPostForm, h.RequireLogin)
	e.POST("/create/", h.NewPost, h.RequireLogin)
	e.GET("/posts/:id/edit/", h.GetEditPostForm)
	e.POST("/posts/:id/edit/", h.EditPost)
	e.POST("/posts/:id/comment/", h.AddComment, h.RequireLogin)

	e.GET("/follow/", h.GetFollowIndex, h.RequireLogin)
	e.GET("/profile/:username/follow/", h.Follow, h.RequireLogin)
	e.GET("/profile/:username/unfollow/", h.Unfollow, h.RequireLogin)

	e.GET("/auth/login/", h.GetLoginForm)
	e.POST("/auth/login/", h.Login)
	e.GET("/auth/signup/", h.GetNewUserForm)
	e.POST("/auth/signup/", h.NewUser)
	e.GET("/auth/logout/", h.Logout)
}

// AuthMiddleware parses the Authorization cookie when present and leaves the
// request anonymous otherwise. Access control happens per route.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             []byte(secret),
		TokenLookup:            "cookie:Authorization",
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// currentUserID returns the authenticated caller's id, or "" for anonymous
// callers (missing, invalid or expired token).
func (h *Handler) currentUserID(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	userID, _ := claims["user_id"].(string)
	return userID
}

// currentUser resolves the caller to a stored user, nil when anonymous.
func (h *Handler) currentUser(c echo.Context) *domain.User {
	userID := h.currentUserID(c)
	if userID == "" {
		return nil
	}
	user, err := h.Store.UserByID(userID)
	if err != nil {
		return nil
	}
	return &user
}

// RequireLogin redirects anonymous callers to the login page, carrying the
// requested path so the flow can resume after authentication.
func (h *Handler) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.currentUserID(c) == "" {
			return c.Redirect(http.StatusFound,
				"/auth/login/?next="+url.QueryEscape(c.Request().URL.Path))
		}
		return next(c)
	}
}
