package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/generated/servers"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsContextKey = "orderflow.claims"

var ErrNoClaims = errors.New("no authenticated user in request context")

// Claims carries the authenticated user's identity through a request.
type Claims struct {
	UserID kernel.UUID
	Name   string
	Email  string
	Role   user.Role
}

// IsAdmin reports whether the authenticated user has the admin role.
func (c Claims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}

// TokenIssuer creates and verifies signed session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer creates a token issuer with the given signing secret and
// token lifetime.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
	}
}

// Issue signs a session token for the verified user.
func (t *TokenIssuer) Issue(account *user.User) (string, error) {
	if err := account.Validate(); err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   account.ID().String(),
		"name":  account.Name(),
		"email": account.Email(),
		"role":  account.Role().String(),
		"iat":   now.Unix(),
		"exp":   now.Add(t.ttl).Unix(),
	})

	return token.SignedString(t.secret)
}

// Verify parses a session token and recovers the user's claims.
func (t *TokenIssuer) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := kernel.UUIDFromString(sub)
	if err != nil {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	roleName, _ := mapClaims["role"].(string)
	role, err := user.RoleFromString(roleName)
	if err != nil {
		return Claims{}, jwt.ErrTokenInvalidClaims
	}

	name, _ := mapClaims["name"].(string)
	email, _ := mapClaims["email"].(string)

	return Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Role:   role,
	}, nil
}

// AuthMiddleware verifies the bearer token on every request except login
// and stores the claims in the request context.
func AuthMiddleware(issuer *TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if strings.HasSuffix(ctx.Path(), "/auth/login") {
				return next(ctx)
			}

			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, servers.Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired token",
				})
			}

			ctx.Set(claimsContextKey, claims)
			return next(ctx)
		}
	}
}

// claimsFrom recovers the authenticated user's claims stored by the
// middleware.
func claimsFrom(ctx echo.Context) (Claims, error) {
	claims, ok := ctx.Get(claimsContextKey).(Claims)
	if !ok {
		return Claims{}, ErrNoClaims
	}
	return claims, nil
}
