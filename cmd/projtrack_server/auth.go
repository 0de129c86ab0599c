package main

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kdudkov/projtrack/internal/identity"
)

const (
	EmailKey = "email"
	NameKey  = "name"
)

// getAuth takes the caller email from the trusted proxy header or from a
// bearer token. Requests with neither are rejected with 401.
func getAuth(tokens *identity.TokenManager, trustedHeader string) fiber.Handler {
	logger := slog.With("logger", "auth")

	return func(c *fiber.Ctx) error {
		if trustedHeader != "" {
			if email := c.Get(trustedHeader); email != "" {
				c.Locals(EmailKey, email)
				return c.Next()
			}
		}

		if tokens != nil {
			if token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "); ok {
				claims, err := tokens.Verify(token)
				if err != nil {
					logger.Info("bad token", slog.String("client", c.IP()), slog.Any("error", err))
					return c.SendStatus(fiber.StatusUnauthorized)
				}

				c.Locals(EmailKey, claims.Email)
				c.Locals(NameKey, claims.Name)

				return c.Next()
			}
		}

		return c.SendStatus(fiber.StatusUnauthorized)
	}
}

// resolveUser makes sure the caller has a user row.
func resolveUser(users *identity.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := users.Resolve(c.UserContext(), Email(c), local(c, NameKey)); err != nil {
			return internalError(c, err)
		}

		return c.Next()
	}
}

func Email(c *fiber.Ctx) string {
	return local(c, EmailKey)
}

func local(c *fiber.Ctx, key string) string {
	if s, ok := c.Locals(key).(string); ok {
		return s
	}

	return ""
}
