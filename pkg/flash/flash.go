package flash

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/formflow"
)

// Store persists a Result across one Post-Redirect-Get cycle.
type Store interface {
	// Put persists the result and attaches its carrier cookie to the
	// response being redirected.
	Put(ctx context.Context, w http.ResponseWriter, res formflow.Result) error

	// Take consumes the stored result: it is deleted as it is read.
	// Returns ErrNotFound when no result is pending.
	Take(ctx context.Context, w http.ResponseWriter, r *http.Request) (formflow.Result, error)
}

// Option configures a store's carrier cookie.
type Option func(*cookieConfig)

type cookieConfig struct {
	name     string
	path     string
	domain   string
	maxAge   int
	secure   bool
	sameSite http.SameSite
}

func defaultCookieConfig() cookieConfig {
	return cookieConfig{
		name:     "ff_flash",
		path:     "/",
		maxAge:   300,
		sameSite: http.SameSiteLaxMode,
	}
}

// WithName sets the carrier cookie name. Default: "ff_flash".
func WithName(name string) Option {
	return func(c *cookieConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// WithPath sets the carrier cookie path. Default: "/".
func WithPath(path string) Option {
	return func(c *cookieConfig) {
		c.path = path
	}
}

// WithDomain sets the carrier cookie domain.
func WithDomain(domain string) Option {
	return func(c *cookieConfig) {
		c.domain = domain
	}
}

// WithMaxAge sets how long, in seconds, a pending result survives before
// the browser drops it. Default: 300.
func WithMaxAge(seconds int) Option {
	return func(c *cookieConfig) {
		c.maxAge = seconds
	}
}

// WithSecure sets the Secure flag on the carrier cookie.
func WithSecure(secure bool) Option {
	return func(c *cookieConfig) {
		c.secure = secure
	}
}

// WithSameSite sets the SameSite attribute. Default: Lax.
func WithSameSite(ss http.SameSite) Option {
	return func(c *cookieConfig) {
		c.sameSite = ss
	}
}

func (c cookieConfig) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     c.path,
		Domain:   c.domain,
		MaxAge:   maxAge,
		Secure:   c.secure,
		HttpOnly: true,
		SameSite: c.sameSite,
	}
}
