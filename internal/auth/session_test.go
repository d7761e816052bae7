package auth

import (
	"errors"
	"net/http"
	"testing"
)

func TestFromLoginResponse_UnifiOS(t *testing.T) {
	h := http.Header{}
	h.Set(CSRFHeader, "csrf-123")
	cookies := []*http.Cookie{
		{Name: "other", Value: "x"},
		{Name: TokenCookie, Value: "tok-abc"},
	}

	s, err := FromLoginResponse(h, cookies, false)
	if err != nil {
		t.Fatalf("FromLoginResponse() error = %v", err)
	}
	if s.Token != "tok-abc" {
		t.Errorf("Token = %q, want %q", s.Token, "tok-abc")
	}
	if s.CSRFToken != "csrf-123" {
		t.Errorf("CSRFToken = %q, want %q", s.CSRFToken, "csrf-123")
	}

	headers := s.Headers()
	if headers["Cookie"] != "TOKEN=tok-abc" {
		t.Errorf("Cookie header = %q, want %q", headers["Cookie"], "TOKEN=tok-abc")
	}
	if headers[CSRFHeader] != "csrf-123" {
		t.Errorf("CSRF header = %q, want %q", headers[CSRFHeader], "csrf-123")
	}
}

func TestFromLoginResponse_Legacy(t *testing.T) {
	tests := []struct {
		name  string
		authz string
	}{
		{name: "bearer prefix", authz: "Bearer tok-legacy"},
		{name: "lowercase prefix", authz: "bearer tok-legacy"},
		{name: "bare token", authz: "tok-legacy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			h.Set("Authorization", tt.authz)

			s, err := FromLoginResponse(h, nil, true)
			if err != nil {
				t.Fatalf("FromLoginResponse() error = %v", err)
			}
			if s.Token != "tok-legacy" {
				t.Errorf("Token = %q, want %q", s.Token, "tok-legacy")
			}
			if got := s.Headers()["Authorization"]; got != "Bearer tok-legacy" {
				t.Errorf("Authorization header = %q, want %q", got, "Bearer tok-legacy")
			}
		})
	}
}

func TestFromLoginResponse_NoToken(t *testing.T) {
	_, err := FromLoginResponse(http.Header{}, nil, false)
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("error = %v, want ErrNoToken", err)
	}
}

func TestSession_HeadersEmpty(t *testing.T) {
	if got := (Session{}).Headers(); len(got) != 0 {
		t.Errorf("Headers() = %v, want empty", got)
	}
}
