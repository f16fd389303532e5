package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/finnvale/drivescout/internal/auth"
)

type authOptions struct {
	credentialsDir string
	printURL       bool
}

func newAuthCmd() *cobra.Command {
	opts := &authOptions{}

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Drive",
		Long: `Runs the interactive OAuth consent flow and stores the resulting
credential. Requires a client_secrets.json in the credentials directory,
downloaded from the Google Cloud console for an installed application.

The granted scope is read-only; drivescout never modifies Drive content.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.credentialsDir, "credentials-dir", "", "directory holding client_secrets.json and the stored credential (default: user config dir)")
	cmd.Flags().BoolVar(&opts.printURL, "print-url", false, "print the authorization URL and exit without waiting for a code")

	return cmd
}

func runAuth(cmd *cobra.Command, opts *authOptions) error {
	store, err := auth.NewStore(opts.credentialsDir)
	if err != nil {
		return fmt.Errorf("opening credential store: %w", err)
	}

	oauthConfig, err := store.LoadOAuthConfig(auth.ReadOnlyScopes...)
	if err != nil {
		return fmt.Errorf("loading OAuth client configuration: %w", err)
	}

	if opts.printURL {
		url := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	}

	prompter := &auth.ConsolePrompter{
		Config: oauthConfig,
		In:     os.Stdin,
		Out:    cmd.OutOrStdout(),
	}

	cred, err := prompter.ObtainCredential(cmd.Context())
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	if err := store.Save(cred); err != nil {
		return fmt.Errorf("storing credential: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Credential stored in %s\n", store.Dir())
	return nil
}
