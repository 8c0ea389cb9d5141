package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"taskflow/internal/models"
)

// APIError is a non-2xx response from the server, carrying the error message
// from the response envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the task API. The session token, when present, is attached to
// every request via the x-auth-token header.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

func New(baseURL string, session *Session) *Client {
	if session == nil {
		session = NewSession("")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(30 * time.Second),
		session: session,
	}
}

// http.DefaultClient has no timeout, so always build a configured client.
func newHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}

func (c *Client) Session() *Session {
	return c.session
}

type authResponse struct {
	Success bool              `json:"success"`
	Token   string            `json:"token"`
	User    models.PublicUser `json:"user"`
}

// Register creates an account and stores the minted token in the session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.PublicUser, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}

	c.session.set(resp.Token, &resp.User)
	if err := c.session.Save(); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and stores the minted token in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*models.PublicUser, error) {
	body := map[string]string{"email": email, "password": password}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}

	c.session.set(resp.Token, &resp.User)
	if err := c.session.Save(); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout clears the session; tokens cannot be revoked server-side.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) UpdateProfile(ctx context.Context, name, email string) (*models.PublicUser, error) {
	body := map[string]string{"name": name, "email": email}

	var resp struct {
		Success bool              `json:"success"`
		User    models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", body, &resp); err != nil {
		return nil, err
	}

	c.session.set(c.session.Token(), &resp.User)
	if err := c.session.Save(); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var resp struct {
		Success bool          `json:"success"`
		Count   int           `json:"count"`
		Data    []models.Task `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) CreateTask(ctx context.Context, title, description, status string) (*models.Task, error) {
	body := map[string]string{"title": title}
	if description != "" {
		body["description"] = description
	}
	if status != "" {
		body["status"] = status
	}

	var resp struct {
		Success bool        `json:"success"`
		Data    models.Task `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// TaskUpdate mirrors the update endpoint's optional fields.
type TaskUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) (*models.Task, error) {
	var resp struct {
		Success bool        `json:"success"`
		Data    models.Task `json:"data"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, update, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("x-auth-token", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Error}
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
