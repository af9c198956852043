// Package client is the Go API client for the todo backend. It caches the
// session token in durable storage, attaches it to every request and, when
// the server reports the token invalid, discards the cache so the caller can
// re-enter the login flow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/techgit41/Advanced-Todo-App/domain"
)

// ErrSessionExpired signals that the cached session was rejected by the
// server and has been discarded; the caller must log in again.
var ErrSessionExpired = errors.New("session expired, login required")

const defaultTimeout = 10 * time.Second

// APIError is a non-401 failure reported by the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.Fields)
	}
	return e.Message
}

// TodoQuery mirrors the list endpoint's filter parameters.
type TodoQuery struct {
	Category  string
	Priority  string
	Completed *bool
	Search    string
	SortBy    string
	SortOrder string
}

// Client talks to the backend REST API. Mutations are never retried; every
// failure is surfaced to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	store   *SessionStore
	session *Session
}

// New builds a client around baseURL, restoring any session cached in store.
func New(baseURL string, store *SessionStore) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		store:   store,
	}
	if store != nil {
		session, err := store.Load()
		if err != nil {
			return nil, err
		}
		c.session = session
	}
	return c, nil
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account and caches the issued session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

// Login exchanges credentials for a session and caches it.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Logout discards the cached session locally. Tokens cannot be revoked
// server-side; they simply expire.
func (c *Client) Logout() error {
	c.session = nil
	if c.store != nil {
		return c.store.Clear()
	}
	return nil
}

func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.do(ctx, http.MethodPut, "/api/auth/change-password", body, nil)
}

func (c *Client) Todos(ctx context.Context, query TodoQuery) ([]domain.Todo, error) {
	todos := []domain.Todo{}
	if err := c.do(ctx, http.MethodGet, "/api/todos"+query.encode(), nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, fields map[string]interface{}) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", fields, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id string, fields map[string]interface{}) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+url.PathEscape(id), fields, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (*domain.StatsReport, error) {
	var report domain.StatsReport
	if err := c.do(ctx, http.MethodGet, "/api/todos/stats", nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) authenticate(ctx context.Context, path string, body map[string]string) (*Session, error) {
	var auth struct {
		Token string      `json:"token"`
		User  SessionUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &auth); err != nil {
		return nil, err
	}

	session := &Session{Token: auth.Token, User: auth.User}
	c.session = session
	if c.store != nil {
		if err := c.store.Save(session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

type envelope struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	authenticated := c.session != nil
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}

	// An unauthenticated response with a token attached means the session is
	// no longer valid: forget it and send the caller back to login.
	if resp.StatusCode == http.StatusUnauthorized && authenticated {
		_ = c.Logout()
		return ErrSessionExpired
	}

	if !env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Code,
			Message:    env.Message,
			Fields:     env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (q TodoQuery) encode() string {
	values := url.Values{}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Priority != "" {
		values.Set("priority", q.Priority)
	}
	if q.Completed != nil {
		values.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.SortBy != "" {
		values.Set("sortBy", q.SortBy)
	}
	if q.SortOrder != "" {
		values.Set("sortOrder", q.SortOrder)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
