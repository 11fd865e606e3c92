package middleware

import (
	"eurolens/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// SiteGate puts the whole application behind HTTP basic auth when
// SITE_PASSWORD is set. Any username is accepted; only the password counts.
// Without the secret the gate is a no-op.
func SiteGate(cfg *config.Config) fiber.Handler {
	if cfg.SitePassword == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return basicauth.New(basicauth.Config{
		Realm: `Basic realm="Protected Site"`,
		Authorizer: func(_, password string) bool {
			return password == cfg.SitePassword
		},
	})
}
