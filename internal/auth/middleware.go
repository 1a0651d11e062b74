package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/expense-service/internal/domain"
	"github.com/spec-kit/expense-service/internal/repository"
	apperrors "github.com/spec-kit/expense-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, reconstructed per request
// from a validated token. It lives only in the request's locals.
type Principal struct {
	UserID int64
	Email  string
	Name   string
}

// Middleware validates bearer tokens and binds principals to requests.
// Paths matching the public allow-list pass through untouched; every other
// route requires a valid token before its handler runs.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	public []string
}

// NewMiddleware constructs the authentication gate.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, publicRoutes []string) *Middleware {
	return &Middleware{tokens: tokens, users: users, public: publicRoutes}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if m.isPublic(c.Path()) {
		return c.Next()
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Validate(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	user, err := m.users.GetByEmail(c.Context(), claims.Subject)
	if err != nil {
		// A valid token whose subject no longer exists means the account
		// was deleted after issuance.
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, domain.ErrNotFound) {
			return apperrors.NewUnauthorized("unknown subject")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{UserID: user.ID, Email: user.Email, Name: user.Name})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity bound by Handle.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// isPublic matches whole path segments only, so /auth exempts /auth/login but
// not /authors.
func (m *Middleware) isPublic(path string) bool {
	for _, prefix := range m.public {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
