// Package session carries the cart in a signed client-side cookie.
//
// The cookie value is an HS256 JWT whose "cart" claim holds the product id
// to quantity map. The server keeps no session state.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/magazin/internal/cart"
	"github.com/Skotchmaster/magazin/pkg/logging"
)

const DefaultCookieName = "session"

var ErrInvalidSession = errors.New("invalid session")

type Claims struct {
	Cart cart.Cart `json:"cart"`
	jwt.RegisteredClaims
}

type Store struct {
	Secret     []byte
	CookieName string
	MaxAge     time.Duration
	Secure     bool

	now func() time.Time
}

func NewStore(secret []byte, maxAge time.Duration, secure bool) *Store {
	return &Store{
		Secret:     secret,
		CookieName: DefaultCookieName,
		MaxAge:     maxAge,
		Secure:     secure,
		now:        time.Now,
	}
}

func (s *Store) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *Store) Encode(c cart.Cart) (string, error) {
	now := s.clock().UTC()
	claims := Claims{
		Cart: c,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.MaxAge)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return token, nil
}

func (s *Store) Decode(tokenStr string) (cart.Cart, error) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	c := claims.Cart
	if c == nil {
		c = cart.New()
	}
	c.Sanitize()
	return c, nil
}

// Load returns the cart from the request cookie. A missing cookie is an
// empty cart; a cookie that fails verification returns an empty cart
// together with ErrInvalidSession.
func (s *Store) Load(r *http.Request) (cart.Cart, error) {
	ck, err := r.Cookie(s.CookieName)
	if err != nil || ck.Value == "" {
		return cart.New(), nil
	}
	c, err := s.Decode(ck.Value)
	if err != nil {
		return cart.New(), err
	}
	return c, nil
}

// Save writes the cart back to the client. An empty cart expires the cookie.
func (s *Store) Save(c echo.Context, crt cart.Cart) error {
	if crt.IsEmpty() {
		c.SetCookie(s.cookie("", -1))
		return nil
	}

	value, err := s.Encode(crt)
	if err != nil {
		return err
	}
	c.SetCookie(s.cookie(value, int(s.MaxAge.Seconds())))
	return nil
}

func (s *Store) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     s.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   s.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Middleware decodes the session cookie once per request and puts the cart
// into the request context.
func (s *Store) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			crt, err := s.Load(req)
			if err != nil {
				logging.FromContext(req.Context()).Warn("session_invalid", "reason", "cookie failed verification, starting empty cart", "error", err)
			}
			c.SetRequest(req.WithContext(IntoContext(req.Context(), crt)))
			return next(c)
		}
	}
}

type ctxKey struct{}

func IntoContext(ctx context.Context, c cart.Cart) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func FromContext(ctx context.Context) cart.Cart {
	if c, ok := ctx.Value(ctxKey{}).(cart.Cart); ok && c != nil {
		return c
	}
	return cart.New()
}
