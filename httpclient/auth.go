package httpclient

import (
	"strings"

	"github.com/ruwler/ruwler-go/errors"
)

// AuthMode selects how the credential is presented in the Authorization header.
type AuthMode string

const (
	// AuthModeAPIKey sends the raw key.
	AuthModeAPIKey AuthMode = "apikey"
	// AuthModeToken sends "Bearer <key>".
	AuthModeToken AuthMode = "token"
)

// ParseAuthMode normalizes s and checks it is a known mode.
func ParseAuthMode(s string) (AuthMode, error) {
	m := AuthMode(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

// Validate returns an InvalidAuthMode error for unknown modes.
func (m AuthMode) Validate() error {
	switch m {
	case AuthModeAPIKey, AuthModeToken:
		return nil
	}
	return errors.InvalidAuthMode(string(m))
}

// Credential is an API key together with the mode it is presented in.
// Its string forms never reveal the key.
type Credential struct {
	key  string
	mode AuthMode
}

// NewCredential creates a credential. It is checked when a header is produced.
func NewCredential(key string, mode AuthMode) Credential {
	return Credential{key: key, mode: mode}
}

func (c Credential) Key() string    { return c.key }
func (c Credential) Mode() AuthMode { return c.mode }
func (c Credential) IsZero() bool   { return c.key == "" }

// Header returns the Authorization header value.
func (c Credential) Header() (string, error) {
	if c.key == "" {
		return "", errors.MissingArgument("api_key")
	}
	switch c.mode {
	case AuthModeAPIKey:
		return c.key, nil
	case AuthModeToken:
		return "Bearer " + c.key, nil
	}
	return "", errors.InvalidAuthMode(string(c.mode))
}

func (c Credential) String() string {
	if c.key == "" {
		return string(c.mode) + ":<empty>"
	}
	return string(c.mode) + ":" + redacted
}

func (c Credential) GoString() string { return "httpclient.Credential{" + c.String() + "}" }
