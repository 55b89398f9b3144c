package web

import "github.com/ariel-nathan/chirp/internal/domain"

// Page states. "loading" never appears here: it is a client-side state;
// the server reports what it actually resolved.
const (
	StateOK           = "ok"
	StateEmpty        = "empty"
	StateError        = "error"
	StateNotFound     = "not_found"
	StateUserNotFound = "user_not_found"
	StateNoPosts      = "no_posts"
)

// FeedView is the view model for the home page.
type FeedView struct {
	SignedIn bool          `json:"signedIn"`
	Composer *ComposerView `json:"composer,omitempty"`
	Feed     FeedSection   `json:"feed"`
}

// ComposerView is present only for signed-in callers; the composer is
// not rendered at all for anonymous visitors.
type ComposerView struct {
	MaxLength int `json:"maxLength"`
}

type FeedSection struct {
	State string                  `json:"state"`
	Posts []domain.PostWithAuthor `json:"posts"`
}

// PostView is the view model for /post/:id.
type PostView struct {
	State string                 `json:"state"`
	Post  *domain.PostWithAuthor `json:"post,omitempty"`
}

// UserView is the view model for /user/:id.
type UserView struct {
	State   string                  `json:"state"`
	Profile *domain.PublicProfile   `json:"profile,omitempty"`
	Posts   []domain.PostWithAuthor `json:"posts"`
}
