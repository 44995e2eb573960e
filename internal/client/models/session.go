package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dashshell/internal/common"
)

// AuthToken is the authenticated session as issued by the identity provider
// and mirrored into the durable store.
//
// ExpiresAt is serialized as epoch milliseconds under "expiresAt".
type AuthToken struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

type authTokenJSON struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      *User  `json:"user"`
}

func (t AuthToken) MarshalJSON() ([]byte, error) {
	u := t.User
	return json.Marshal(authTokenJSON{
		Token:     t.Token,
		ExpiresAt: t.ExpiresAt.UnixMilli(),
		User:      &u,
	})
}

func (t *AuthToken) UnmarshalJSON(b []byte) error {
	var raw authTokenJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t.Token = raw.Token
	t.ExpiresAt = time.UnixMilli(raw.ExpiresAt)
	t.User = User{}
	if raw.User != nil {
		t.User = *raw.User
	}
	return nil
}

// DecodeAuthToken parses a persisted session record. Records that are not
// JSON, or that lack a token, a user id or a known role, are reported as
// common.ErrMalformedSession.
func DecodeAuthToken(b []byte) (*AuthToken, error) {
	var t AuthToken
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedSession, err)
	}
	if t.Token == "" || t.User.ID == "" {
		return nil, fmt.Errorf("%w: token or user missing", common.ErrMalformedSession)
	}
	if !t.User.Role.Valid() {
		return nil, fmt.Errorf("%w: role %q", common.ErrMalformedSession, t.User.Role)
	}
	return &t, nil
}

// ExpiredAt reports whether the session is no longer valid at now.
// A session expiring exactly at now is expired.
func (t AuthToken) ExpiredAt(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
