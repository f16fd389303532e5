package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
)

// ConsolePrompter drives the installed-application consent flow on a
// terminal: it prints the authorization URL, waits for the user to paste the
// code Google displays after consent, and exchanges it for a credential.
type ConsolePrompter struct {
	Config *oauth2.Config
	In     io.Reader
	Out    io.Writer
}

// ObtainCredential implements AuthorizationPrompter.
func (p *ConsolePrompter) ObtainCredential(ctx context.Context) (*Credential, error) {
	url := p.Config.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Fprintf(p.Out, "Open the following URL in a browser and grant access:\n\n  %s\n\n", url)
	fmt.Fprint(p.Out, "Paste the authorization code here: ")

	scanner := bufio.NewScanner(p.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read authorization code: %w", err)
		}
		return nil, fmt.Errorf("no authorization code provided")
	}
	code := strings.TrimSpace(scanner.Text())
	if code == "" {
		return nil, fmt.Errorf("no authorization code provided")
	}

	tok, err := p.Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return FromToken(tok, nil, p.Config.Scopes), nil
}
