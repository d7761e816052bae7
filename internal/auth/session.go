package auth

import (
	"errors"
	"net/http"
	"strings"
)

const (
	// TokenCookie is the cookie UniFi OS consoles return on login.
	TokenCookie = "TOKEN"
	// CSRFHeader must accompany every UniFi OS request made with the cookie.
	CSRFHeader = "X-CSRF-Token"
)

// ErrNoToken is returned when a login response carries no session token.
var ErrNoToken = errors.New("login successful but no session token returned")

// Session holds the credentials obtained from a login.
type Session struct {
	Token     string
	CSRFToken string
	Legacy    bool // Pre-UniFi OS NVR, uses a bearer token instead of a cookie
}

// FromLoginResponse extracts the session from the headers and cookies of a
// successful login response.
func FromLoginResponse(header http.Header, cookies []*http.Cookie, legacy bool) (Session, error) {
	s := Session{Legacy: legacy}

	if legacy {
		// Format: "Bearer <token>" or just the token
		authz := strings.TrimSpace(header.Get("Authorization"))
		if i := strings.IndexByte(authz, ' '); i >= 0 && strings.EqualFold(authz[:i], "bearer") {
			authz = strings.TrimSpace(authz[i+1:])
		}
		s.Token = authz
	} else {
		for _, c := range cookies {
			if c.Name == TokenCookie {
				s.Token = c.Value
			}
		}
		s.CSRFToken = header.Get(CSRFHeader)
	}

	if s.Token == "" {
		return Session{}, ErrNoToken
	}
	return s, nil
}

// Valid reports whether the session carries a token.
func (s Session) Valid() bool { return s.Token != "" }

// Headers returns the request headers that authenticate as this session.
func (s Session) Headers() map[string]string {
	if !s.Valid() {
		return map[string]string{}
	}
	if s.Legacy {
		return map[string]string{"Authorization": "Bearer " + s.Token}
	}

	h := map[string]string{"Cookie": TokenCookie + "=" + s.Token}
	if s.CSRFToken != "" {
		h[CSRFHeader] = s.CSRFToken
	}
	return h
}
