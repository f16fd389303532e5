// Package auth owns the delegated-access credential for the running process.
//
// A single credential (access token, optional refresh token, expiry, granted
// scopes) is persisted under the user config directory and cached in memory
// by the Manager for the process lifetime. The Manager hands out tokens and
// HTTP clients, refreshing expired tokens through a single-flight exchange:
// concurrent callers never trigger duplicate refreshes, which some providers
// punish by invalidating the refresh token.
//
// The interactive consent flow is modeled as the AuthorizationPrompter
// capability. The server never prompts on its own; first-run authorization
// happens through the `drivescout auth` command, which injects a
// ConsolePrompter.
package auth
