package flash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formflow"
)

// Redis is a flash store that keeps the record server-side under a TTL
// and hands the client only an opaque ticket cookie.
type Redis struct {
	client redis.UniversalClient
	cfg    cookieConfig
	prefix string
	ttl    time.Duration
}

// RedisOption configures the Redis store beyond its carrier cookie.
type RedisOption func(*Redis)

// WithPrefix sets the Redis key prefix. Default: "formflow:flash".
func WithPrefix(prefix string) RedisOption {
	return func(s *Redis) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL sets how long a pending record lives server-side.
// Default: 5 minutes.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *Redis) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithCookie applies carrier cookie options.
func WithCookie(opts ...Option) RedisOption {
	return func(s *Redis) {
		for _, opt := range opts {
			opt(&s.cfg)
		}
	}
}

// NewRedis creates a Redis-backed flash store.
//
// Example:
//
//	store := flash.NewRedis(client,
//	    flash.WithTTL(time.Minute),
//	    flash.WithCookie(flash.WithSecure(true)),
//	)
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	s := &Redis{
		client: client,
		cfg:    defaultCookieConfig(),
		prefix: "formflow:flash",
		ttl:    5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores the result under a fresh ticket and attaches the ticket
// cookie to the response.
func (s *Redis) Put(ctx context.Context, w http.ResponseWriter, res formflow.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}

	ticket := uuid.NewString()
	if err := s.client.Set(ctx, s.key(ticket), data, s.ttl).Err(); err != nil {
		return err
	}

	http.SetCookie(w, s.cfg.cookie(ticket, int(s.ttl.Seconds())))
	return nil
}

// Take consumes the ticket cookie and the record it points to.
// Returns ErrNotFound when no result is pending or the record expired.
func (s *Redis) Take(ctx context.Context, w http.ResponseWriter, r *http.Request) (formflow.Result, error) {
	c, err := r.Cookie(s.cfg.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return formflow.Result{}, ErrNotFound
		}
		return formflow.Result{}, err
	}

	// Single-use: drop the ticket regardless of lookup outcome.
	http.SetCookie(w, s.cfg.cookie("", -1))

	data, err := s.client.GetDel(ctx, s.key(c.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return formflow.Result{}, ErrNotFound
		}
		return formflow.Result{}, err
	}

	var res formflow.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return formflow.Result{}, ErrDecode
	}
	return res, nil
}

func (s *Redis) key(ticket string) string {
	return s.prefix + ":" + ticket
}
