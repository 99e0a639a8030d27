package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"quill/domain"
)

func seedUserWithPassword(t *testing.T, h *Handler, username, password string) domain.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := domain.User{ID: uuid.NewString(), Username: username}
	if err := h.Store.CreateUser(u, string(hashed)); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLoginSetsCookieAndHonorsNext(t *testing.T) {
	e, h := setupApp(t)
	seedUserWithPassword(t, h, "leo", "hunter2")

	form := url.Values{
		"username": {"leo"},
		"password": {"hunter2"},
		"next":     {"/follow/"},
	}
	rec := doPostForm(e, "/auth/login/", form, nil)
	assertRedirect(t, rec, "/follow/")

	var found bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "Authorization" && cookie.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an Authorization cookie after login")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e, h := setupApp(t)
	seedUserWithPassword(t, h, "leo", "hunter2")

	form := url.Values{"username": {"leo"}, "password": {"wrong"}}
	rec := doPostForm(e, "/auth/login/", form, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "Authorization" {
			t.Fatal("failed login must not set a cookie")
		}
	}
}

func TestLoginIgnoresExternalNext(t *testing.T) {
	e, h := setupApp(t)
	seedUserWithPassword(t, h, "leo", "hunter2")

	form := url.Values{
		"username": {"leo"},
		"password": {"hunter2"},
		"next":     {"https://evil.example"},
	}
	rec := doPostForm(e, "/auth/login/", form, nil)
	assertRedirect(t, rec, "/")
}

func TestSignupCreatesUserAndLogsIn(t *testing.T) {
	e, h := setupApp(t)

	form := url.Values{"username": {"mia"}, "password": {"s3cret"}}
	rec := doPostForm(e, "/auth/signup/", form, nil)
	assertRedirect(t, rec, "/")

	if _, err := h.Store.UserByUsername("mia"); err != nil {
		t.Fatalf("expected user to exist: %v", err)
	}
}

func TestSignupRejectsTakenUsername(t *testing.T) {
	e, h := setupApp(t)
	seedUser(t, h, "mia")

	form := url.Values{"username": {"mia"}, "password": {"s3cret"}}
	rec := doPostForm(e, "/auth/signup/", form, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSignupDisabledOutsideDev(t *testing.T) {
	e, h := setupApp(t)
	h.EnableSignup = false
	h.Environment = "pro"

	form := url.Values{"username": {"mia"}, "password": {"s3cret"}}
	rec := doPostForm(e, "/auth/signup/", form, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestSafeNext(t *testing.T) {
	cases := map[string]string{
		"/follow/":             "/follow/",
		"/":                    "/",
		"":                     "/",
		"//evil.example":       "/",
		"https://evil.example": "/",
	}
	for in, want := range cases {
		if got := safeNext(in); got != want {
			t.Fatalf("safeNext(%q) = %q, want %q", in, got, want)
		}
	}
}
