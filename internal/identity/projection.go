package identity

import "github.com/ariel-nathan/chirp/internal/domain"

// Project reduces a raw identity-provider record to the public profile
// embedded in post responses. Username fallback order: the primary
// username, then the first external account's handle, then the user's
// first name.
func Project(u RawUser) domain.PublicProfile {
	username := "unknown"
	switch {
	case u.Username != nil && *u.Username != "":
		username = *u.Username
	case firstExternalUsername(u) != "":
		username = firstExternalUsername(u)
	case u.FirstName != nil && *u.FirstName != "":
		username = *u.FirstName
	}

	return domain.PublicProfile{
		ID:              u.ID,
		Username:        username,
		ProfileImageURL: u.ImageURL,
	}
}

func firstExternalUsername(u RawUser) string {
	for _, acct := range u.ExternalAccounts {
		if acct.Username != nil && *acct.Username != "" {
			return *acct.Username
		}
	}
	return ""
}
