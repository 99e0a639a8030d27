package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"quill/cache"
	"quill/domain"
	"quill/store"
)

const testSecret = "test-secret"

//
// --- Setup ---
//

func setupApp(t *testing.T) (*echo.Echo, *Handler) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	st, err := store.Open("sqlite", dsn, "../db/migrations")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	h := &Handler{
		Store:        st,
		Cache:        cache.New(20 * time.Second),
		JWTSecret:    testSecret,
		EnableSignup: true,
		Environment:  "dev",
		MediaDir:     t.TempDir(),
	}

	e := echo.New()
	e.Renderer = NewRenderer("../templates")
	e.Use(AuthMiddleware(testSecret))
	h.Register(e)

	return e, h
}

func seedUser(t *testing.T, h *Handler, username string) domain.User {
	t.Helper()
	u := domain.User{ID: uuid.NewString(), Username: username}
	if err := h.Store.CreateUser(u, "not-a-real-hash"); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedPost(t *testing.T, h *Handler, author domain.User, text string, group *domain.Group) domain.Post {
	t.Helper()
	p := domain.Post{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		Group:     group,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.CreatePost(p); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

// authCookie builds the Authorization cookie the JWT middleware expects.
func authCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return &http.Cookie{Name: "Authorization", Value: signed}
}

//
// --- Request helpers ---
//

func doGet(e *echo.Echo, target string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doPostForm(e *echo.Echo, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
