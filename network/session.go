// Package network provides the authenticated HTTP session shared by every request of a run.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/util"
	"golang.org/x/net/publicsuffix"
)

// Options configures a Session.
type Options struct {
	Retry         RetryConfig
	HeaderTimeout time.Duration
	UserAgent     string
	// SpoofTLS dials HTTPS with a Chrome ClientHello fingerprint.
	SpoofTLS bool
	// Transport replaces the tuned default transport, e.g. to go through a proxy.
	Transport http.RoundTripper
}

// Session is a cookie-bound HTTP client. Cookies are mutated by the transport only.
type Session struct {
	Client *http.Client
	jar    http.CookieJar
}

// StatusError reports a response with an unexpected status code.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.URL, e.StatusCode)
}

// NewSession creates a session with an empty cookie jar and the retry policy from opts.
func NewSession(opts Options) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	if opts.UserAgent == "" {
		opts.UserAgent = constant.UserAgent
	}

	return &Session{
		Client: &http.Client{
			Jar: jar,
			Transport: &RetryTransport{
				Base: &headerTransport{
					Base:      baseTransport(opts),
					UserAgent: opts.UserAgent,
				},
				Config: opts.Retry,
			},
		},
		jar: jar,
	}, nil
}

func baseTransport(opts Options) http.RoundTripper {
	if opts.Transport != nil {
		return opts.Transport
	}
	return newTransport(opts)
}

func newTransport(opts Options) *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	if opts.HeaderTimeout > 0 {
		t.ResponseHeaderTimeout = opts.HeaderTimeout
	}
	if opts.SpoofTLS {
		t.DialTLSContext = dialChromeTLS
		t.ForceAttemptHTTP2 = false
	}
	return t
}

// Cookie returns the value of the named cookie the jar holds for u.
func (s *Session) Cookie(u *url.URL, name string) (string, bool) {
	for _, c := range s.jar.Cookies(u) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// NoRedirect returns a client sharing the session's jar and transport that does not follow redirects.
func (s *Session) NoRedirect() *http.Client {
	c := *s.Client
	c.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &c
}

// Page fetches an HTML page and returns its decoded body.
func (s *Session) Page(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "br, gzip")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{Method: req.Method, URL: pageURL, StatusCode: resp.StatusCode}
	}

	body, err := decodeBody(resp)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", pageURL, err)
	}
	defer util.Ignore(body.Close)

	var b strings.Builder
	if _, err := io.Copy(&b, body); err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}
	return b.String(), nil
}

type headerTransport struct {
	Base      http.RoundTripper
	UserAgent string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}
	return t.Base.RoundTrip(req)
}
