package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// ReadOnlyScopes are the Google OAuth scopes this server requests. Everything
// drivescout does is a read, so the drive.readonly scope is sufficient.
var ReadOnlyScopes = []string{
	"https://www.googleapis.com/auth/drive.readonly",
}

// expirySlack is subtracted from the stored expiry when judging validity, so
// a token about to expire mid-call is refreshed up front rather than failing
// the remote call it was issued for.
const expirySlack = 5 * time.Minute

// Status describes what can be done with a credential.
type Status int

const (
	// StatusValid means the access token can be used as-is.
	StatusValid Status = iota
	// StatusRefreshable means the access token expired but a refresh token
	// is available to mint a new one.
	StatusRefreshable
	// StatusDead means the credential cannot be used or refreshed;
	// interactive re-authorization is required.
	StatusDead
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusRefreshable:
		return "refreshable"
	default:
		return "dead"
	}
}

// Credential is the persisted delegated-access credential: a short-lived
// access token, an optional long-lived refresh token, the access token's
// expiry, and the scopes the user granted.
type Credential struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// Status reports the credential's validity at the given instant.
func (c *Credential) Status(now time.Time) Status {
	if c == nil || c.AccessToken == "" && c.RefreshToken == "" {
		return StatusDead
	}
	if c.AccessToken != "" && (c.Expiry.IsZero() || now.Add(expirySlack).Before(c.Expiry)) {
		return StatusValid
	}
	if c.RefreshToken != "" {
		return StatusRefreshable
	}
	return StatusDead
}

// Token converts the credential to an oauth2 token.
func (c *Credential) Token() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       c.Expiry,
	}
}

// FromToken builds a credential from an oauth2 token, keeping the previous
// refresh token when the provider omits it from a refresh response.
func FromToken(t *oauth2.Token, prev *Credential, scopes []string) *Credential {
	c := &Credential{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
		Scopes:       scopes,
	}
	if c.RefreshToken == "" && prev != nil {
		c.RefreshToken = prev.RefreshToken
	}
	if len(c.Scopes) == 0 && prev != nil {
		c.Scopes = prev.Scopes
	}
	return c
}
