package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/common"
)

// Client is the API surface the CLI uses.
type Client interface {
	Register(ctx context.Context, userName, password, password2 string) (string, error)
	Login(ctx context.Context, userName, password string) error
	Logout()
	LoggedIn() bool
	ListFavourites(ctx context.Context) ([]string, error)
	AddFavourite(ctx context.Context, itemID string) ([]string, error)
	RemoveFavourite(ctx context.Context, itemID string) ([]string, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type credentials struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	Password2 string `json:"password2,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Register creates an account and returns the server's confirmation message.
func (c *HTTPClient) Register(ctx context.Context, userName, password, password2 string) (string, error) {
	var resp messageResponse
	err := c.do(ctx, http.MethodPost, "/api/user/register", "", credentials{userName, password, password2}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login authenticates and keeps the issued token for later calls.
func (c *HTTPClient) Login(ctx context.Context, userName, password string) error {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/user/login", "", credentials{UserName: userName, Password: password}, &resp)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.accessToken = resp.Token
	c.mu.Unlock()
	return nil
}

func (c *HTTPClient) Logout() {
	c.mu.Lock()
	c.accessToken = ""
	c.mu.Unlock()
}

func (c *HTTPClient) LoggedIn() bool {
	return c.token() != ""
}

func (c *HTTPClient) ListFavourites(ctx context.Context) ([]string, error) {
	return c.favourites(ctx, http.MethodGet, "")
}

func (c *HTTPClient) AddFavourite(ctx context.Context, itemID string) ([]string, error) {
	return c.favourites(ctx, http.MethodPut, itemID)
}

func (c *HTTPClient) RemoveFavourite(ctx context.Context, itemID string) ([]string, error) {
	return c.favourites(ctx, http.MethodDelete, itemID)
}

func (c *HTTPClient) favourites(ctx context.Context, method, itemID string) ([]string, error) {
	token := c.token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	path := "/api/user/favourites"
	if method != http.MethodGet {
		path += "/" + url.PathEscape(itemID)
	}

	var favs []string
	if err := c.do(ctx, method, path, token, nil, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.AuthScheme+" "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er errorResponse
		if json.NewDecoder(resp.Body).Decode(&er) == nil {
			apiErr.Kind, apiErr.Message = er.Kind, er.Message
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
