package console

import "errors"

var (
	// ErrAuthenticationMissing means no credential is stored locally.
	ErrAuthenticationMissing = errors.New("not logged in")
	// ErrAuthenticationInvalid means the server rejected the credential.
	ErrAuthenticationInvalid = errors.New("session rejected by server")
	// ErrAuthorizationDenied means the session is valid but not an admin's.
	ErrAuthorizationDenied = errors.New("access denied: admin privileges required")
	// ErrNetworkOrParse means the profile check never got a usable answer.
	ErrNetworkOrParse = errors.New("could not verify session")

	ErrMissingIdentifier = errors.New("missing identifier")
	ErrActionInFlight    = errors.New("action already in progress")
	ErrUnknownAction     = errors.New("unknown action")
	ErrUnknownTab        = errors.New("unknown tab")
	ErrSuperseded        = errors.New("response superseded by a newer request")
	ErrNotStarted        = errors.New("console not started")
)
