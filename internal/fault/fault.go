package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so that callers (and ultimately the assistant on
// the other side of the MCP transport) can react without parsing message text.
type Kind string

const (
	// KindNoCredential means no stored credential exists; interactive
	// authorization is required before any tool can run.
	KindNoCredential Kind = "no_credential"

	// KindRefreshFailed means the stored refresh token was rejected by the
	// provider. The user has to re-authorize.
	KindRefreshFailed Kind = "refresh_failed"

	// KindUnknownTool means the requested tool name is not one of the
	// registered tools.
	KindUnknownTool Kind = "unknown_tool"

	// KindInvalidArgument means tool arguments failed validation. No remote
	// call was made.
	KindInvalidArgument Kind = "invalid_argument"

	// KindAuthRequired means a usable credential could not be produced for
	// this call.
	KindAuthRequired Kind = "auth_required"

	// KindNotFound means the remote file or folder does not exist or is not
	// visible to the authorized user.
	KindNotFound Kind = "not_found"

	// KindPermissionDenied means the authorized user lacks access to the
	// requested resource.
	KindPermissionDenied Kind = "permission_denied"

	// KindRateLimited means the provider rejected the call due to quota.
	// Retried internally; surfaced only after the retry budget is exhausted.
	KindRateLimited Kind = "rate_limited"

	// KindRemoteTimeout means a remote call exceeded its deadline.
	KindRemoteTimeout Kind = "remote_timeout"

	// KindRemoteServerError means the provider failed in a way that is not
	// attributable to this request.
	KindRemoteServerError Kind = "remote_server_error"

	// KindUnsupportedContentType means the file has no text representation.
	KindUnsupportedContentType Kind = "unsupported_content_type"

	// KindContentTooLarge means the file exceeds the content size cap.
	KindContentTooLarge Kind = "content_too_large"

	// KindDecodeFailure means downloaded bytes were not valid text.
	KindDecodeFailure Kind = "decode_failure"
)

// Error is a classified failure. Every error that crosses a component
// boundary in this codebase is either an *Error or wraps one.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a classified error with a human-readable message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an underlying error.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors report
// KindRemoteServerError so that nothing escapes the taxonomy.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindRemoteServerError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
