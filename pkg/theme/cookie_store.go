package theme

import (
	"context"
	"errors"
	"net/http"

	"github.com/borrmann/bautagebuch/pkg/cookie"
)

// CookieMaxAge keeps the preference for a year.
const CookieMaxAge = 365 * 24 * 60 * 60

// CookieStore keeps the preference in the "theme" cookie of one request.
// Writes go to the response and are visible to later reads of the same store.
type CookieStore struct {
	cookies *cookie.Manager
	w       http.ResponseWriter
	r       *http.Request

	written bool
	value   Theme
}

// NewCookieStore binds the store to a request/response pair.
func NewCookieStore(cookies *cookie.Manager, w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{cookies: cookies, w: w, r: r}
}

func (s *CookieStore) Get(context.Context) (Theme, bool, error) {
	if s.written {
		return s.value, s.value != "", nil
	}

	raw, err := s.cookies.Get(s.r, StorageKey)
	if errors.Is(err, cookie.ErrCookieNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	t, err := Parse(raw)
	if err != nil {
		// Garbage in the cookie counts as no preference.
		return "", false, nil
	}
	return t, true, nil
}

func (s *CookieStore) Set(_ context.Context, t Theme) error {
	if _, err := Parse(string(t)); err != nil {
		return err
	}
	// Page scripts read the cookie to avoid a flash before first paint.
	s.cookies.Set(s.w, StorageKey, string(t), cookie.WithMaxAge(CookieMaxAge), cookie.WithHTTPOnly(false))
	s.written, s.value = true, t
	return nil
}

func (s *CookieStore) Remove(context.Context) error {
	s.cookies.Delete(s.w, StorageKey)
	s.written, s.value = true, ""
	return nil
}

// HeaderSystem reads the Sec-CH-Prefers-Color-Scheme client hint.
// It never changes during a request.
type HeaderSystem struct {
	dark bool
}

// ClientHintHeader is the request header carrying the system scheme.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

func NewHeaderSystem(r *http.Request) HeaderSystem {
	return HeaderSystem{dark: r.Header.Get(ClientHintHeader) == "dark"}
}

func (h HeaderSystem) PrefersDark(context.Context) bool { return h.dark }

func (HeaderSystem) Subscribe(func(bool)) func() { return func() {} }
