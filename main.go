package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/acme/autocert"

	"quill/cache"
	"quill/config"
	"quill/handler"
	"quill/store"
)

func main() {
	cfg := config.Init()

	fmt.Println("Running database schema migrations...")
	st, err := store.Open(cfg.DBDriver, cfg.DBURL, cfg.MigrationsDir)
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No database schema migration ran. Database schema already in latest version")
		} else {
			fmt.Printf("Error during database schema migration: %v\n", err)
			os.Exit(1)
		}
	}

	secret, err := fetchSecret(cfg)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		panic(err)
	}

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(handler.AuthMiddleware(secret))

	h := &handler.Handler{
		Store:        st,
		Cache:        cache.New(cfg.CacheTTL),
		JWTSecret:    secret,
		EnableSignup: cfg.EnableSignup,
		Environment:  cfg.Environment,
		MediaDir:     cfg.MediaDir,
	}
	h.Register(e)

	e.Static("/static", "assets")
	e.Static("/media", cfg.MediaDir)
	e.File("/favicon.ico", "assets/favicon.ico")
	e.Renderer = handler.NewRenderer("templates")

	e.HTTPErrorHandler = customHTTPErrorHandler

	addr := cfg.AddressListen
	if cfg.Environment == config.DevEnv && addr == "" {
		addr = ":8080"
	}

	if addr != "" {
		e.Logger.Fatal(e.Start(addr))
	} else {
		// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
		e.AutoTLSManager.Cache = autocert.DirCache("/var/www/.cache")
		if cfg.WhitelistHost != "" {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.WhitelistHost)
		}
		e.Pre(middleware.HTTPSRedirect())
		e.Logger.Fatal(e.StartAutoTLS(":443"))
	}
}

func fetchSecret(cfg *config.Config) (string, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.Environment == config.DevEnv {
		secret = "unsecure"
	}
	if secret == "" {
		return "", errors.New("no secret defined")
	}
	return secret, nil
}

func customHTTPErrorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code != http.StatusNotFound {
		c.Logger().Error(err)
	}
	errorPage := fmt.Sprintf("assets/%d.html", code)
	if err := c.File(errorPage); err != nil {
		c.Logger().Error(err)
	}
}
