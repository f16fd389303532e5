// Package cmd implements the drivescout command line interface.
//
// The root command defaults to 'serve', which runs the MCP server on
// stdio. The 'auth' command performs the one-time interactive OAuth
// consent flow and persists the resulting credential for serve to use.
package cmd
