// Package auth signs in to the course platform's identity provider and keeps credentials in the system keyring.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lectio-cli/lectio/constant"
	"github.com/lectio-cli/lectio/log"
	"github.com/lectio-cli/lectio/network"
	"github.com/lectio-cli/lectio/util"
)

// ErrMissingCSRF is returned when the login page does not set the anti-forgery cookie.
var ErrMissingCSRF = errors.New("login page did not set the " + constant.CSRFCookie + " cookie")

// AuthenticationError reports a failed login. Status is the HTTP status of the login
// response, or zero when no response was received; Err carries the underlying cause in that case.
type AuthenticationError struct {
	Username string
	Status   int
	Err      error
}

func (e *AuthenticationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("invalid login or password for %q (status %d)", e.Username, e.Status)
	}
	return fmt.Sprintf("login failed for %q: %v", e.Username, e.Err)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// LoginOptions describes one sign-in attempt.
type LoginOptions struct {
	Username string
	Password string
	// LoginURL is the identity provider's login page.
	LoginURL string
	// NextPage is the post-login redirect target submitted with the form.
	NextPage string

	Network network.Options
}

// Login authenticates against the identity provider and returns a session bound to the resulting cookies.
// Success is signalled only by a 302 response to the credentials POST; anything else is an AuthenticationError.
func Login(ctx context.Context, opts LoginOptions) (*network.Session, error) {
	session, err := network.NewSession(opts.Network)
	if err != nil {
		return nil, err
	}

	if err := login(ctx, session, opts); err != nil {
		return nil, err
	}
	return session, nil
}

func login(ctx context.Context, session *network.Session, opts LoginOptions) error {
	fail := func(status int, err error) error {
		log.WithFields(log.Fields{"user": opts.Username, "status": status}).Error("login failed")
		return &AuthenticationError{Username: opts.Username, Status: status, Err: err}
	}

	loginURL, err := url.Parse(opts.LoginURL)
	if err != nil {
		return fail(0, fmt.Errorf("login url: %w", err))
	}

	if _, err := session.Page(ctx, loginURL.String()); err != nil {
		return fail(0, err)
	}

	token, ok := session.Cookie(loginURL, constant.CSRFCookie)
	if !ok {
		return fail(0, ErrMissingCSRF)
	}

	form := url.Values{
		"username":            {opts.Username},
		"password":            {opts.Password},
		"csrfmiddlewaretoken": {token},
		"next":                {opts.NextPage},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", loginURL.String())

	resp, err := session.NoRedirect().Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer util.Ignore(resp.Body.Close)
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusFound {
		return fail(resp.StatusCode, nil)
	}

	log.WithFields(log.Fields{"user": opts.Username}).Info("logged in")
	return nil
}
