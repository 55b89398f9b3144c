package posts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ariel-nathan/chirp/internal/domain"
	"github.com/ariel-nathan/chirp/internal/metrics"
)

type postStore interface {
	Insert(ctx context.Context, authorID, content string) (domain.Post, error)
	ListNewest(ctx context.Context, limit int) ([]domain.Post, error)
	GetByID(ctx context.Context, postID string) (domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]domain.Post, error)
}

type userDirectory interface {
	ProfileList(ctx context.Context, ids []string) ([]domain.PublicProfile, error)
}

type createLimiter interface {
	Allow(ctx context.Context, userID string) (bool, error)
}

type eventPublisher interface {
	PublishChirpCreated(ctx context.Context, post domain.Post) error
}

// Service implements the post query operations: the global feed, single
// post lookup, per-author history, and authenticated create.
type Service struct {
	store     postStore
	directory userDirectory
	limiter   createLimiter
	publisher eventPublisher
}

func NewService(store postStore, directory userDirectory, limiter createLimiter, publisher eventPublisher) *Service {
	return &Service{
		store:     store,
		directory: directory,
		limiter:   limiter,
		publisher: publisher,
	}
}

// ListAll returns the newest posts (capped at domain.FeedLimit), each
// joined with its author's public profile. Authors are resolved with a
// single batched lookup, one round-trip regardless of feed size.
func (s *Service) ListAll(ctx context.Context) ([]domain.PostWithAuthor, error) {
	posts, err := s.store.ListNewest(ctx, domain.FeedLimit)
	if err != nil {
		return nil, err
	}
	return s.joinAuthors(ctx, posts)
}

func (s *Service) GetByID(ctx context.Context, postID string) (domain.PostWithAuthor, error) {
	// Post ids are uuids. Anything else cannot exist, and letting it
	// through would make Postgres reject the uuid cast instead of
	// reporting no rows.
	if _, err := uuid.Parse(postID); err != nil {
		return domain.PostWithAuthor{}, domain.ErrNotFound
	}

	post, err := s.store.GetByID(ctx, postID)
	if err != nil {
		return domain.PostWithAuthor{}, err
	}

	joined, err := s.joinAuthors(ctx, []domain.Post{post})
	if err != nil {
		return domain.PostWithAuthor{}, err
	}
	return joined[0], nil
}

// GetByAuthor returns the author's posts newest-first. An author with
// no posts yields an empty slice, not an error; whether the author
// exists at all is the profile lookup's concern.
func (s *Service) GetByAuthor(ctx context.Context, authorID string) ([]domain.PostWithAuthor, error) {
	posts, err := s.store.ListByAuthor(ctx, authorID, domain.FeedLimit)
	if err != nil {
		return nil, err
	}
	return s.joinAuthors(ctx, posts)
}

// Create validates and persists a chirp for the authenticated caller.
// The caller id comes from the session, never from client input.
func (s *Service) Create(ctx context.Context, callerID, content string) (string, error) {
	if strings.TrimSpace(callerID) == "" {
		return "", domain.ErrUnauthenticated
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", &domain.ValidationError{Field: "content", Message: "content must not be empty"}
	}
	if len([]rune(content)) > domain.MaxContentLength {
		return "", &domain.ValidationError{Field: "content", Message: "content must be at most 280 characters"}
	}

	ok, err := s.limiter.Allow(ctx, callerID)
	if err != nil {
		return "", err
	}
	if !ok {
		metrics.RateLimitRejections.Inc()
		return "", domain.ErrRateLimited
	}

	post, err := s.store.Insert(ctx, callerID, content)
	if err != nil {
		return "", err
	}

	metrics.ChirpsCreated.Inc()

	// The post is saved; a failed publish must not fail the request.
	if s.publisher != nil {
		if err := s.publisher.PublishChirpCreated(ctx, post); err != nil {
			slog.Error("failed to publish chirp.created", "error", err, "post_id", post.ID)
		}
	}

	return post.ID, nil
}

// joinAuthors resolves every distinct author id among posts in one
// batched directory call. A post whose author is missing from the
// result fails the whole call: clients never see an authorless post.
func (s *Service) joinAuthors(ctx context.Context, posts []domain.Post) ([]domain.PostWithAuthor, error) {
	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}

	profiles, err := s.directory.ProfileList(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.PublicProfile, len(profiles))
	for _, pr := range profiles {
		byID[pr.ID] = pr
	}

	out := make([]domain.PostWithAuthor, 0, len(posts))
	for _, p := range posts {
		author, ok := byID[p.AuthorID]
		if !ok {
			slog.Error("post references unknown author", "post_id", p.ID, "author_id", p.AuthorID)
			return nil, domain.ErrAuthorNotFound
		}
		out = append(out, domain.PostWithAuthor{Post: p, Author: author})
	}
	return out, nil
}
