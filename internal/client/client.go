package client

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"protect-cli/internal/auth"
)

const (
	DefaultPort       = 443
	DefaultLegacyPort = 7443

	unifiOSLoginPath = "/api/auth/login"
	legacyLoginPath  = "/api/auth"
	unifiOSAPIPrefix = "/proxy/protect/api"
	legacyAPIPrefix  = "/api"
)

type ProtectClient struct {
	HTTP   *resty.Client
	Config ClientConfig

	session auth.Session
}

type ClientConfig struct {
	Address    string
	Port       int // 0 selects the default for the NVR flavour
	NotUnifiOS bool
	Username   string
	Password   string
	VerifySSL  bool
	Timeout    time.Duration
}

// LoginPayload matches the JSON body of the login endpoints
type LoginPayload struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// BaseURL returns the scheme, host and port of the NVR.
func (cfg ClientConfig) BaseURL() string {
	port := cfg.Port
	if port == 0 {
		port = DefaultPort
		if cfg.NotUnifiOS {
			port = DefaultLegacyPort
		}
	}
	return "https://" + net.JoinHostPort(cfg.Address, strconv.Itoa(port))
}

func (cfg ClientConfig) apiPrefix() string {
	if cfg.NotUnifiOS {
		return legacyAPIPrefix
	}
	return unifiOSAPIPrefix
}

func New(cfg ClientConfig) *ProtectClient {
	r := resty.New()
	r.SetBaseURL(cfg.BaseURL())
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")

	// Protect consoles ship with self-signed certificates
	r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !cfg.VerifySSL})

	if cfg.Timeout > 0 {
		r.SetTimeout(cfg.Timeout)
	}

	return &ProtectClient{
		HTTP:   r,
		Config: cfg,
	}
}

// Login authenticates with the NVR, applies the session to all future
// requests made by this client and returns it for persistence.
func (c *ProtectClient) Login(ctx context.Context) (auth.Session, error) {
	const op = "login"

	path := unifiOSLoginPath
	if c.Config.NotUnifiOS {
		path = legacyLoginPath
	}

	payload := LoginPayload{
		Username:   c.Config.Username,
		Password:   c.Config.Password,
		RememberMe: false,
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return auth.Session{}, &Error{Code: ExitRequest, Op: op, Err: err}
	}

	if resp.IsError() {
		// Protect answers bad credentials with 401, some firmware with 400
		e := statusError(op, resp.StatusCode(), resp.String())
		e.Code = ExitAuth
		return auth.Session{}, e
	}

	session, err := auth.FromLoginResponse(resp.Header(), resp.Cookies(), c.Config.NotUnifiOS)
	if err != nil {
		return auth.Session{}, &Error{Code: ExitAuth, Op: op, Err: err}
	}

	c.UseSession(session)
	return session, nil
}

// UseSession authenticates subsequent requests with a previously saved session.
func (c *ProtectClient) UseSession(s auth.Session) {
	c.session = s
	c.HTTP.SetHeaders(s.Headers())
}

// get performs an authenticated GET against the Protect API and decodes the
// JSON body into result.
func (c *ProtectClient) get(ctx context.Context, op, path string, result any) error {
	if !c.session.Valid() {
		return &Error{Code: ExitAuth, Op: op, Err: errors.New("not logged in")}
	}

	resp, err := c.HTTP.R().
		SetContext(ctx).
		SetResult(result).
		Get(c.Config.apiPrefix() + path)
	if err != nil {
		// A successful status with an error means the body did not decode
		if resp != nil && resp.IsSuccess() {
			return &Error{Code: ExitDecode, Op: op, Status: resp.StatusCode(), Err: err}
		}
		return &Error{Code: ExitRequest, Op: op, Err: err}
	}

	if resp.IsError() {
		return statusError(op, resp.StatusCode(), resp.String())
	}
	return nil
}
