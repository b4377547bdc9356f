// Package client is a Go client for the todo API. It mirrors the
// server's routes one method per operation and keeps the login state
// in an explicit Session.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Task mirrors the server's task response.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the todo API.
type Client struct {
	base    string
	http    *http.Client
	session Session
}

// New returns a Client for the API at base (e.g. "http://localhost:8080").
func New(base string) *Client {
	return &Client{
		base: base,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// Session returns the current login state.
func (c *Client) Session() Session {
	return c.session
}

// Restore installs a previously saved session (read at startup).
func (c *Client) Restore(s Session) {
	c.session = s
}

// Register creates an account. It does not log in.
func (c *Client) Register(ctx context.Context, email, password, name string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	if name != "" {
		body["name"] = name
	}
	var u User
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, &u, false); err != nil {
		return User{}, err
	}
	return u, nil
}

// Login exchanges credentials for a token and populates the session.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
		User        User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp, false); err != nil {
		return User{}, err
	}
	c.session = Session{Token: resp.AccessToken, User: resp.User}
	return resp.User, nil
}

// Logout clears the session. Tokens are stateless, so there is nothing
// to revoke server-side; they simply expire.
func (c *Client) Logout() {
	c.session = Session{}
}

// Tasks lists the caller's tasks, newest first.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var list []Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks", nil, &list, true); err != nil {
		return nil, err
	}
	return list, nil
}

// Task fetches a single task by id.
func (c *Client) Task(ctx context.Context, id string) (Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodGet, "/api/v1/tasks/"+id, nil, &t, true); err != nil {
		return Task{}, err
	}
	return t, nil
}

// CreateTask creates a task. Empty status defaults server-side to TODO.
func (c *Client) CreateTask(ctx context.Context, title, description, status string) (Task, error) {
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}
	if status != "" {
		body["status"] = status
	}
	var t Task
	if err := c.do(ctx, http.MethodPost, "/api/v1/tasks", body, &t, true); err != nil {
		return Task{}, err
	}
	return t, nil
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id string, patch TaskPatch) (Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodPatch, "/api/v1/tasks/"+id, patch, &t, true); err != nil {
		return Task{}, err
	}
	return t, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/tasks/"+id, nil, nil, true)
}

// ErrNotLoggedIn is returned when an authenticated call is made with an
// empty session.
var ErrNotLoggedIn = fmt.Errorf("not logged in")

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	if authed && !c.session.Authenticated() {
		return ErrNotLoggedIn
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
