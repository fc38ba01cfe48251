package core

import "errors"

// Error kinds surfaced by the GitHub client. Callers match them with
// errors.Is; auth failures, missing repositories and transport problems
// wrap the matching kind so the UI boundary can render a stable message
// per kind. Other API errors pass through wrapped with the operation
// name only.
var (
	// ErrAuth indicates the API rejected the credential
	ErrAuth = errors.New("github: authentication failed")

	// ErrNotFound indicates the requested repository does not exist or
	// is not visible to the credential
	ErrNotFound = errors.New("github: not found")

	// ErrNetwork indicates a transport-level failure; retry by
	// re-triggering the action
	ErrNetwork = errors.New("github: network error")
)
