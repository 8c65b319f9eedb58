package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

const (
	xsrfCookie = "XSRF-TOKEN"
	xsrfHeader = "X-XSRF-TOKEN"
	loginPath  = "/login"
)

// Navigator receives the login redirect on 401 responses
type Navigator interface {
	Path() string
	Redirect(path string)
}

// Options configures a Client
type Options struct {
	BaseURL string
	Domain  string
	Version string
	Timeout time.Duration

	// Navigator is optional; without it 401s only surface as errors
	Navigator Navigator

	// Cookies persists the session between runs; optional
	Cookies KV

	// RetryDelay is the pause before the single read retry
	RetryDelay time.Duration

	// Transport overrides the HTTP transport, used by tests
	Transport http.RoundTripper
}

// Client wraps the backend REST API
type Client struct {
	rest    *resty.Client
	jar     http.CookieJar
	domain  *url.URL
	version string
	opts    Options
	cookies *cookieStore

	mu         sync.Mutex
	nav        Navigator
	redirected bool
}

// New creates a client. Persisted cookies, if any, are loaded into the jar.
func New(ctx context.Context, opts Options) (*Client, error) {
	domain, err := url.Parse(strings.TrimRight(opts.Domain, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api domain %q: %w", opts.Domain, err)
	}
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid api base url %q: %w", opts.BaseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		jar:     jar,
		domain:  domain,
		version: strings.Trim(opts.Version, "/"),
		opts:    opts,
		nav:     opts.Navigator,
	}

	c.rest = resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		OnBeforeRequest(c.prefixVersion).
		OnBeforeRequest(c.attachXSRF).
		OnAfterResponse(c.handleResponse)
	if opts.Transport != nil {
		c.rest.SetTransport(opts.Transport)
	}

	if opts.Cookies != nil {
		c.cookies = &cookieStore{kv: opts.Cookies, jar: jar, url: domain}
		if err := c.cookies.restore(ctx); err != nil {
			slog.Warn("failed to restore session cookies", "error", err)
		}
	}

	return c, nil
}

// SetNavigator replaces the navigator notified on 401
func (c *Client) SetNavigator(nav Navigator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav = nav
	c.redirected = false
}

// prefixVersion adds the version segment to every relative path outside /auth
func (c *Client) prefixVersion(_ *resty.Client, req *resty.Request) error {
	req.URL = VersionedPath(c.version, req.URL)
	return nil
}

// VersionedPath returns path as it is sent to the backend
func VersionedPath(version, path string) string {
	if version == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	if path == "/auth" || strings.HasPrefix(path, "/auth/") {
		return path
	}
	return "/" + version + path
}

func (c *Client) attachXSRF(_ *resty.Client, req *resty.Request) error {
	if req.Method == http.MethodGet || req.Method == http.MethodHead || req.Method == http.MethodOptions {
		return nil
	}
	if token := c.xsrfToken(); token != "" {
		req.SetHeader(xsrfHeader, token)
	}
	return nil
}

func (c *Client) xsrfToken() string {
	for _, cookie := range c.jar.Cookies(c.domain) {
		if cookie.Name != xsrfCookie {
			continue
		}
		if v, err := url.QueryUnescape(cookie.Value); err == nil {
			return v
		}
		return cookie.Value
	}
	return ""
}

func (c *Client) handleResponse(_ *resty.Client, resp *resty.Response) error {
	slog.Debug("api request",
		"method", resp.Request.Method,
		"path", resp.Request.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)

	if len(resp.Cookies()) > 0 && c.cookies != nil {
		if err := c.cookies.save(resp.Request.Context()); err != nil {
			slog.Warn("failed to persist session cookies", "error", err)
		}
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.onUnauthorized()
	} else if resp.IsSuccess() {
		c.mu.Lock()
		c.redirected = false
		c.mu.Unlock()
	}
	return nil
}

// onUnauthorized redirects to login once per expiry episode
func (c *Client) onUnauthorized() {
	c.mu.Lock()
	nav := c.nav
	if nav == nil || c.redirected || nav.Path() == loginPath {
		c.mu.Unlock()
		return
	}
	c.redirected = true
	c.mu.Unlock()

	slog.Info("session expired, redirecting to login")
	nav.Redirect(loginPath)
}

// EnsureCSRF primes the XSRF cookie. Required before login and register.
func (c *Client) EnsureCSRF(ctx context.Context) error {
	target := c.domain.JoinPath("sanctum", "csrf-cookie").String()
	resp, err := c.rest.R().SetContext(ctx).Get(target)
	if err != nil {
		return &Error{Method: http.MethodGet, Path: target, Err: err}
	}
	if resp.IsError() {
		return &Error{Method: http.MethodGet, Path: target, Status: resp.StatusCode(), Message: http.StatusText(resp.StatusCode())}
	}
	return nil
}

// ClearCookies forgets the session locally
func (c *Client) ClearCookies(ctx context.Context) error {
	current := c.jar.Cookies(c.domain)
	expired := make([]*http.Cookie, 0, len(current))
	for _, cookie := range current {
		expired = append(expired, &http.Cookie{Name: cookie.Name, Path: "/", MaxAge: -1})
	}
	c.jar.SetCookies(c.domain, expired)

	if c.cookies != nil {
		return c.cookies.clear(ctx)
	}
	return nil
}

// call performs one request. result receives the decoded body when non-nil.
// GET requests are retried once when no response arrived.
func (c *Client) call(ctx context.Context, method, path string, body, result any, prepare func(*resty.Request)) error {
	attempt := func() error {
		req := c.rest.R().SetContext(ctx).SetError(&errorBody{})
		if body != nil {
			req.SetBody(body)
		}
		if result != nil {
			req.SetResult(result)
		}
		if prepare != nil {
			prepare(req)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			// a body that fails to decode still carries a status
			if resp != nil && resp.StatusCode() > 0 {
				apiErr := responseError(method, path, resp)
				apiErr.Err = err
				return apiErr
			}
			return &Error{Method: method, Path: path, Err: err}
		}
		if resp.IsError() {
			return responseError(method, path, resp)
		}
		return nil
	}

	if method != http.MethodGet {
		return attempt()
	}

	return retry.Do(attempt,
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(c.opts.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return IsNetwork(err) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
	)
}

func responseError(method, path string, resp *resty.Response) *Error {
	apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode()}
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		apiErr.Message = body.Message
		apiErr.Errors = body.Errors
	}
	return apiErr
}

// envelope is the {data: ...} wrapper around every resource payload
type envelope[T any] struct {
	Data T `json:"data"`
}

func getData[T any](ctx context.Context, c *Client, path string) (T, error) {
	var env envelope[T]
	err := c.call(ctx, http.MethodGet, path, nil, &env, nil)
	return env.Data, err
}

func sendData[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var env envelope[T]
	err := c.call(ctx, method, path, body, &env, nil)
	return env.Data, err
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

func seg(id fmt.Stringer) string {
	return url.PathEscape(id.String())
}
