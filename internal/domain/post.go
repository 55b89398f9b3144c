package domain

import "time"

// MaxContentLength is the hard cap on chirp content, enforced both here
// and by a CHECK constraint in Postgres.
const MaxContentLength = 280

// FeedLimit caps how many posts the global feed returns.
const FeedLimit = 100

// Post is a persisted chirp. Posts are immutable once created.
type Post struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"authorId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Seq is the insertion-order tie-breaker for posts sharing a
	// created_at. Not exposed to clients.
	Seq int64 `db:"seq" json:"-"`
}

// PublicProfile is the minimal public subset of an identity-provider
// user record. It is derived on every read, never stored here.
type PublicProfile struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// PostWithAuthor pairs a post with its resolved author. Every post
// returned to a client carries a resolved author; an unresolvable
// author is an error, not a partial result.
type PostWithAuthor struct {
	Post   Post          `json:"post"`
	Author PublicProfile `json:"author"`
}
