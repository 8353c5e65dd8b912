package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/unais-08/blogs-fullstack/internal/apperror"
	"github.com/unais-08/blogs-fullstack/internal/domain"
)

const DefaultBaseURL = "http://localhost:3000/api"

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []apperror.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type envelope[T any] struct {
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Data    T                     `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

type AuthResult struct {
	User  domain.UserResponse `json:"user"`
	Token string              `json:"token"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type NewBlog struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.session == nil {
		c.session = NewSession("")
	}
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// Register creates an account and keeps the returned token in the session.
func (c *Client) Register(ctx context.Context, in Registration) (*AuthResult, error) {
	var out AuthResult
	if err := do(ctx, c, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	c.session.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	var out AuthResult
	if err := do(ctx, c, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	c.session.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Profile(ctx context.Context) (*domain.UserResponse, error) {
	var out domain.UserResponse
	if err := do(ctx, c, http.MethodGet, "/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout asks the server to revoke the token, then forgets it locally even
// when the request fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	var out struct{}
	return do(ctx, c, http.MethodPost, "/auth/logout", nil, &out)
}

func (c *Client) ListBlogs(ctx context.Context) ([]domain.BlogResponse, error) {
	var out []domain.BlogResponse
	if err := do(ctx, c, http.MethodGet, "/blogs", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) ListMyBlogs(ctx context.Context) ([]domain.BlogResponse, error) {
	var out []domain.BlogResponse
	if err := do(ctx, c, http.MethodGet, "/blogs/my/blogs", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) GetBlog(ctx context.Context, id uuid.UUID) (*domain.BlogResponse, error) {
	var out domain.BlogResponse
	if err := do(ctx, c, http.MethodGet, "/blogs/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBlog(ctx context.Context, in NewBlog) (*domain.BlogResponse, error) {
	var out domain.BlogResponse
	if err := do(ctx, c, http.MethodPost, "/blogs", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func do[T any](ctx context.Context, c *Client, method, path string, body any, out *T) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.session.Token()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			c.session.expire()
		}
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = env.Message
			apiErr.Fields = env.Errors
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, decodeErr)
	}

	*out = env.Data
	return nil
}

func nonNil(blogs []domain.BlogResponse) []domain.BlogResponse {
	if blogs == nil {
		return []domain.BlogResponse{}
	}
	return blogs
}
