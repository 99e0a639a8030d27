package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"quill/config"
	"quill/domain"
	"quill/store"
)

type authFormData struct {
	User  *domain.User
	Next  string
	Error string
}

func (h *Handler) GetLoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "user-login.html", authFormData{
		Next: c.QueryParam("next"),
	})
}

func (h *Handler) Login(c echo.Context) error {
	formUsername := c.FormValue("username")
	formPassword := c.FormValue("password")
	next := c.FormValue("next")

	if len(formUsername) == 0 || len(formPassword) == 0 {
		return c.Render(http.StatusBadRequest, "user-login.html", authFormData{
			Next:  next,
			Error: "Username and password are required",
		})
	}

	user, hashed, err := h.Store.UserWithPassword(formUsername)
	if errors.Is(err, store.ErrNotFound) {
		return c.Render(http.StatusBadRequest, "user-login.html", authFormData{
			Next:  next,
			Error: "Wrong username or password",
		})
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(formPassword)); err != nil {
		return c.Render(http.StatusBadRequest, "user-login.html", authFormData{
			Next:  next,
			Error: "Wrong username or password",
		})
	}

	cookie, err := authorizationCookie(user.ID, h.JWTSecret)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, safeNext(next))
}

func (h *Handler) GetNewUserForm(c echo.Context) error {
	return c.Render(http.StatusOK, "user-signup.html", authFormData{})
}

func (h *Handler) NewUser(c echo.Context) error {
	if h.Environment != config.DevEnv && !h.EnableSignup {
		return c.HTML(http.StatusForbidden, "<h1>Forbidden!</h1><p>Sign up has been disabled.</p>")
	}

	user := domain.User{
		ID:       uuid.NewString(),
		Username: c.FormValue("username"),
	}
	password := c.FormValue("password")
	if user.Username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "user-signup.html", authFormData{
			Error: "Username and password are required",
		})
	}

	taken, err := h.Store.UsernameTaken(user.Username)
	if err != nil {
		return err
	}
	if taken {
		return c.Render(http.StatusConflict, "user-signup.html", authFormData{
			Error: "Username already taken",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := h.Store.CreateUser(user, string(hashedPassword)); err != nil {
		return err
	}

	cookie, err := authorizationCookie(user.ID, h.JWTSecret)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, "/")
}

func (h *Handler) Logout(c echo.Context) error {
	cookie := new(http.Cookie)
	cookie.Name = "Authorization"
	cookie.Value = ""
	cookie.Path = "/"
	cookie.Expires = time.Now().Add(-1 * time.Second)
	c.SetCookie(cookie)
	return c.Redirect(http.StatusFound, "/")
}

func authorizationCookie(userID string, secret string) (*http.Cookie, error) {
	if secret == "" {
		return nil, errors.New("missing secret")
	}
	exp := time.Now().Add(time.Hour * 24 * 7)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     exp.Unix(),
	})
	signedData, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	cookie := new(http.Cookie)
	cookie.Name = "Authorization"
	cookie.Value = signedData
	cookie.Expires = exp
	cookie.Path = "/"

	return cookie, nil
}

// safeNext only allows local redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
