package apiclient

import (
	"context"
	"net/http"
)

// Session is the token pair returned by login and refresh.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	User         *User  `json:"user,omitempty"`
}

type User struct {
	ID        uint   `json:"ID"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Status    string `json:"status"`
	Role      struct {
		Name string `json:"name"`
	} `json:"role"`
}

// Login authenticates and stores the returned tokens.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	body := map[string]string{"email": email, "password": password}
	if err := c.Do(ctx, http.MethodPost, "/auth/login", body, &s); err != nil {
		return nil, err
	}
	c.store.Set(s.AccessToken, s.RefreshToken)
	return &s, nil
}
