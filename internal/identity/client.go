package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ariel-nathan/chirp/internal/domain"
	"github.com/ariel-nathan/chirp/internal/metrics"
)

// RawUser is the identity provider's user record as it comes off the
// wire. Only the fields the projection needs are decoded; username and
// first name are optional on the provider side.
type RawUser struct {
	ID               string            `json:"id"`
	Username         *string           `json:"username"`
	FirstName        *string           `json:"first_name"`
	ImageURL         string            `json:"image_url"`
	ExternalAccounts []ExternalAccount `json:"external_accounts"`
}

type ExternalAccount struct {
	Provider string  `json:"provider"`
	Username *string `json:"username"`
}

// Client talks to the hosted identity provider's management API.
type Client struct {
	cli     *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		cli: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// GetUserList fetches user records for all given ids in a single
// request. Ids absent on the provider side are simply missing from the
// result; the caller decides whether that is an error.
func (c *Client) GetUserList(ctx context.Context, ids []string) ([]RawUser, error) {
	if len(ids) == 0 {
		return []RawUser{}, nil
	}

	q := url.Values{}
	for _, id := range ids {
		q.Add("user_id", id)
	}
	q.Set("limit", fmt.Sprintf("%d", len(ids)))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/v1/users?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	metrics.IdentityLookups.Inc()

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	var users []RawUser
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, err
	}

	return users, nil
}

// GetUser fetches a single user record. Returns domain.ErrUserNotFound
// when the provider has no user with that id.
func (c *Client) GetUser(ctx context.Context, id string) (RawUser, error) {
	users, err := c.GetUserList(ctx, []string{id})
	if err != nil {
		return RawUser{}, err
	}
	if len(users) == 0 {
		return RawUser{}, domain.ErrUserNotFound
	}
	return users[0], nil
}
