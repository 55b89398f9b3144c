package identity

import (
	"context"

	"github.com/ariel-nathan/chirp/internal/domain"
)

// ProfileList resolves public profiles for the given ids in one batch.
// Ids unknown to the provider are absent from the result.
func (c *Client) ProfileList(ctx context.Context, ids []string) ([]domain.PublicProfile, error) {
	users, err := c.GetUserList(ctx, ids)
	if err != nil {
		return nil, err
	}

	profiles := make([]domain.PublicProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, Project(u))
	}
	return profiles, nil
}

// Profile resolves a single public profile.
func (c *Client) Profile(ctx context.Context, id string) (domain.PublicProfile, error) {
	u, err := c.GetUser(ctx, id)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	return Project(u), nil
}
