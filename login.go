package ruwler

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ruwler/ruwler-go/errors"
	"github.com/ruwler/ruwler-go/httpclient"
	"github.com/ruwler/ruwler-go/logger"
	"github.com/ruwler/ruwler-go/validation"
)

// Credentials are the user login posted to /login_check.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the outcome of a successful login.
type Session struct {
	Token        string
	RefreshToken string
	// ExpiresAt is zero when the token carries no exp claim or is not a JWT.
	ExpiresAt time.Time
}

// Expired reports whether the token has expired at now. Tokens without a
// known expiry never expire.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Login posts the user credentials and returns the raw response. The
// client credential is left untouched.
func (c *Client) Login(ctx context.Context, email, password string, opts ...httpclient.CallOption) (*httpclient.Response, error) {
	creds := Credentials{Email: email, Password: password}
	if err := validation.Validate(creds); err != nil {
		return nil, err
	}
	return c.Send(ctx, http.MethodPost, PathLogin, creds, nil, opts...)
}

// LoginSession logs in, switches the client to token auth with the issued
// token and returns the session.
func (c *Client) LoginSession(ctx context.Context, email, password string, opts ...httpclient.CallOption) (*Session, error) {
	resp, err := c.Login(ctx, email, password, opts...)
	if err != nil {
		return nil, err
	}

	token, _ := resp.Data.Get("token").AsString()
	if token == "" {
		return nil, errors.API(resp.StatusCode, "login response carries no token", resp.Data.Interface())
	}
	refresh, _ := resp.Data.Get("refresh_token").AsString()

	s := &Session{Token: token, RefreshToken: refresh}
	exp, err := tokenExpiry(token)
	if err != nil {
		c.http.Logger().Log(logger.LevelWarn, "login token expiry unknown", logger.Fields(logger.FieldError, err.Error()))
	}
	s.ExpiresAt = exp

	if err := c.SetCredential(token, httpclient.AuthModeToken); err != nil {
		return nil, err
	}
	return s, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client never holds the signing key.
func tokenExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, err
	}
	return exp.Time, nil
}
