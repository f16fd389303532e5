// Package fault defines the error taxonomy shared by all drivescout
// components.
//
// Failures are classified by Kind so that the tool layer can translate any
// error into a structured, assistant-readable result without inspecting
// provider internals. Components wrap underlying errors (googleapi errors,
// OAuth exchange failures, decode problems) into *fault.Error at the point
// where the classification is known.
package fault
