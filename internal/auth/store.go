package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	credentialFile    = "credential.json"
	clientSecretsFile = "client_secrets.json"
	lockFile          = "credential.lock"
)

// ErrNoCredential is returned by Load when no credential has been persisted.
var ErrNoCredential = errors.New("no stored credential")

// ErrNoClientSecrets is returned when the application-identity file is
// missing. It is provisioned once per deployer and never generated here.
var ErrNoClientSecrets = errors.New("client_secrets.json not found")

// Store persists the single delegated-access credential for this process,
// plus read-only access to the deployer-provisioned application identity.
//
// Writes go through a file lock so a concurrently running `drivescout auth`
// cannot interleave with a refresh write from a running server.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. An empty dir selects the default
// location under the user config directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return &Store{dir: dir}, nil
}

// DefaultDir returns the default configuration directory for drivescout.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, "drivescout"), nil
}

// Dir returns the directory this store reads and writes.
func (s *Store) Dir() string {
	return s.dir
}

// CredentialPath returns the path of the persisted credential.
func (s *Store) CredentialPath() string {
	return filepath.Join(s.dir, credentialFile)
}

// ClientSecretsPath returns the path of the application-identity file.
func (s *Store) ClientSecretsPath() string {
	return filepath.Join(s.dir, clientSecretsFile)
}

// Load reads the persisted credential. Returns ErrNoCredential when the
// file does not exist.
func (s *Store) Load() (*Credential, error) {
	lock := flock.New(filepath.Join(s.dir, lockFile))
	if err := lock.RLock(); err == nil {
		defer lock.Unlock() //nolint:errcheck
	}

	data, err := os.ReadFile(s.CredentialPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("failed to read credential: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("failed to parse credential file: %w", err)
	}
	return &cred, nil
}

// Save writes the credential with owner-only permissions, atomically via a
// temp file rename.
func (s *Store) Save(cred *Credential) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	lock := flock.New(filepath.Join(s.dir, lockFile))
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock credential file: %w", err)
	}
	defer lock.Unlock() //nolint:errcheck

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}

	tmp := s.CredentialPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential: %w", err)
	}
	if err := os.Rename(tmp, s.CredentialPath()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace credential file: %w", err)
	}
	return nil
}

// LoadOAuthConfig reads the deployer-provisioned client_secrets.json (Google
// "installed application" format) and builds the OAuth2 config used for
// authorization and refresh exchanges.
func (s *Store) LoadOAuthConfig(scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(s.ClientSecretsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (expected at %s)", ErrNoClientSecrets, s.ClientSecretsPath())
		}
		return nil, fmt.Errorf("failed to read client secrets: %w", err)
	}

	if len(scopes) == 0 {
		scopes = ReadOnlyScopes
	}
	conf, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secrets: %w", err)
	}
	return conf, nil
}
