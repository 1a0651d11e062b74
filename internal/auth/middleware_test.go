package auth_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/expense-service/internal/api/http"
	"github.com/spec-kit/expense-service/internal/auth"
	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/observability"
)

type stubUserRepo struct {
	byEmail map[string]*domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) error { return errors.New("not implemented") }
func (r *stubUserRepo) Update(context.Context, *domain.User) error { return errors.New("not implemented") }
func (r *stubUserRepo) Delete(context.Context, int64) error        { return errors.New("not implemented") }

func (r *stubUserRepo) GetByID(context.Context, int64) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func newGateApp(users *stubUserRepo, tokens *auth.TokenManager) *fiber.App {
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)

	gate := auth.NewMiddleware(tokens, users, []string{"/auth", "/health"})
	app.Use(gate.Handle)

	app.Post("/auth/login", func(c *fiber.Ctx) error {
		return c.SendString("reached")
	})
	app.Get("/categories", func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return errors.New("principal missing on protected route")
		}
		return c.JSON(fiber.Map{"email": principal.Email})
	})
	app.Get("/authors", func(c *fiber.Ctx) error {
		return c.SendString("reached")
	})
	return app
}

func TestPublicRouteBypassesGate(t *testing.T) {
	app := newGateApp(&stubUserRepo{}, auth.NewTokenManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "reached", string(body))
}

func TestPublicPrefixMatchesWholeSegments(t *testing.T) {
	app := newGateApp(&stubUserRepo{}, auth.NewTokenManager("secret", time.Hour))

	// /authors shares the /auth prefix but is its own segment, so it stays
	// behind the gate
	req := httptest.NewRequest(http.MethodGet, "/authors", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := newGateApp(&stubUserRepo{}, auth.NewTokenManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithValidToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	users := &stubUserRepo{byEmail: map[string]*domain.User{
		"alice@example.com": {ID: 7, Name: "Alice", Email: "alice@example.com"},
	}}
	app := newGateApp(users, tokens)

	token, _, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "alice@example.com")
}

func TestProtectedRouteWithTamperedToken(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	users := &stubUserRepo{byEmail: map[string]*domain.User{
		"alice@example.com": {ID: 7, Email: "alice@example.com"},
	}}
	app := newGateApp(users, tokens)

	token, _, err := tokens.Issue("alice@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithDeletedAccount(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)
	app := newGateApp(&stubUserRepo{}, tokens)

	// token is valid but its subject no longer resolves
	token, _, err := tokens.Issue("ghost@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	app := newGateApp(&stubUserRepo{}, auth.NewTokenManager("secret", time.Hour))

	for _, header := range []string{"Basic abc", "Bearer", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/categories", nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}
}
