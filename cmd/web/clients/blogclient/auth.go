package blogclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"kalshield/models"
)

// -------------------- Auth --------------------

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn calls POST /api/auth/signin. It returns the user together with the
// backend token the backend set as its auth cookie.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	resp, err := c.send(ctx, request{
		op:     "SignIn",
		method: http.MethodPost,
		path:   "/api/auth/signin",
		body:   signInRequest{Email: email, Password: password},
	})
	if err != nil {
		return models.User{}, "", err
	}
	defer resp.Body.Close()

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return models.User{}, "", fmt.Errorf("blog-api SignIn: decode: %w", err)
	}

	token := ""
	for _, ck := range resp.Cookies() {
		if ck.Name == c.tokenCookie {
			token = ck.Value
			break
		}
	}
	if token == "" {
		return models.User{}, "", fmt.Errorf("blog-api SignIn: response has no %s cookie", c.tokenCookie)
	}
	return user, token, nil
}

// SignUp calls POST /api/auth/signup.
func (c *Client) SignUp(ctx context.Context, username, email, password string) error {
	return c.call(ctx, request{
		op:     "SignUp",
		method: http.MethodPost,
		path:   "/api/auth/signup",
		body:   signUpRequest{Username: username, Email: email, Password: password},
	}, nil)
}
