package domain

import "errors"

var (
	// ErrNotFound: the requested post does not exist.
	ErrNotFound = errors.New("post not found")

	// ErrUserNotFound: the identity provider has no user with the
	// requested id.
	ErrUserNotFound = errors.New("user not found")

	// ErrAuthorNotFound: a stored post references an author the
	// identity provider cannot resolve. External-data inconsistency,
	// fails the whole read.
	ErrAuthorNotFound = errors.New("post author could not be resolved")

	// ErrRateLimited: the caller exceeded the per-user create limit.
	ErrRateLimited = errors.New("too many posts, slow down")

	// ErrUnauthenticated: create was attempted without a session. The
	// composer is not shown to signed-out users, so reaching this from
	// the UI should be impossible; the service still rejects it.
	ErrUnauthenticated = errors.New("not authenticated")
)

// ValidationError reports a field-level input failure. The HTTP layer
// surfaces the first one inline next to the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
