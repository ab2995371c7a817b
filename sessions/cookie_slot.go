package sessions

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/jrsteele09/campusmate/internal/errors"
)

const cookieIssuer = "campusmate"

// slotClaims carries the slot value inside an HS256 token
type slotClaims struct {
	Value string `json:"val"`
	jwt.RegisteredClaims
}

// CookieSlot persists the slot in a signed cookie on the viewer's browser.
// One CookieSlot serves one request: writes are sent on the response and
// are visible to later reads within the same request.
type CookieSlot struct {
	w      http.ResponseWriter
	r      *http.Request
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time

	pending map[string]*[]byte // nil entry = deleted during this request
}

var _ Slot = (*CookieSlot)(nil)

type CookieOption func(*CookieSlot)

// SecureCookies forces the Secure flag when TLS ends at a proxy
func SecureCookies(secure bool) CookieOption {
	return func(c *CookieSlot) { c.secure = secure }
}

func NewCookieSlot(w http.ResponseWriter, r *http.Request, secret []byte, maxAge time.Duration, opts ...CookieOption) *CookieSlot {
	c := &CookieSlot{
		w:       w,
		r:       r,
		secret:  secret,
		maxAge:  maxAge,
		now:     time.Now,
		pending: make(map[string]*[]byte),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CookieSlot) Get(key string) ([]byte, bool, error) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return nil, false, nil
		}
		return append([]byte(nil), (*v)...), true, nil
	}

	cookie, err := c.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) || (err == nil && cookie.Value == "") {
		return nil, false, nil
	} else if err != nil {
		return nil, false, apperrors.Wrapf(apperrors.ErrSessionCorrupt, "read cookie %s: %v", key, err)
	}

	claims := &slotClaims{}
	_, err = jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cookieIssuer),
		jwt.WithSubject(key),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, false, apperrors.Wrapf(apperrors.ErrSessionCorrupt, "parse cookie %s: %v", key, err)
	}
	return []byte(claims.Value), true, nil
}

func (c *CookieSlot) Set(key string, value []byte) error {
	now := c.now()
	claims := slotClaims{
		Value: string(value),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cookieIssuer,
			Subject:   key,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.maxAge)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("[CookieSlot] sign %s: %w", key, err)
	}

	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure || c.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.maxAge.Seconds()),
	})
	stored := append([]byte(nil), value...)
	c.pending[key] = &stored
	return nil
}

func (c *CookieSlot) Delete(key string) error {
	http.SetCookie(c.w, &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure || c.r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	c.pending[key] = nil
	return nil
}
