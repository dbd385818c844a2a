package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/seller-dashboard/internal/models"
)

// LoginResult is what the service hands back after a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// SignupInput is the registration form.
type SignupInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and the user's profile.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := json.Marshal(credentials{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return LoginResult{}, err
	}
	env, err := c.do(ctx, request{
		op:          "login",
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	})
	if err != nil {
		return LoginResult{}, err
	}

	// some deployments wrap the result in data, others return it at the top level
	var res LoginResult
	if err := json.Unmarshal(env.raw, &res); err != nil {
		return LoginResult{}, &TransportError{Op: "login", Err: err}
	}
	if res.Token == "" && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &res); err != nil {
			return LoginResult{}, &TransportError{Op: "login", Err: err}
		}
	}
	if res.Token == "" {
		return LoginResult{}, &TransportError{Op: "login", Err: errors.New("response carried no token")}
	}
	if res.User.Email == "" {
		res.User.Email = strings.TrimSpace(email)
	}
	return res, nil
}

// Signup registers a new seller account and returns the service's message.
func (c *Client) Signup(ctx context.Context, in SignupInput) (string, error) {
	in.Email = strings.TrimSpace(in.Email)
	body, err := json.Marshal(in)
	if err != nil {
		return "", err
	}
	env, err := c.do(ctx, request{
		op:          "signup",
		method:      http.MethodPost,
		path:        "/auth/signup",
		body:        bytes.NewReader(body),
		contentType: "application/json",
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
