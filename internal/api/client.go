package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ChatService defines the subset of the API the chat controller needs.
// This interface is implemented by *Client and can be used for testing.
type ChatService interface {
	Messages(ctx context.Context, groupID int64) ([]Message, error)
	MessagesAfter(ctx context.Context, groupID int64, after string) ([]Message, error)
	SendMessage(ctx context.Context, groupID, userID int64, content string) (Message, error)
}

// Ensure Client implements ChatService at compile time.
var _ ChatService = (*Client)(nil)

// Client talks to the StudyApp HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerURL = "127.0.0.1:8080"
	defaultUserAgent = "studyhall/0.1"
	requestTimeout   = 5 * time.Second
)

// Error is a semantic failure: the server answered the request but
// declared the operation unsuccessful. The message is the server's own
// and is surfaced to the user verbatim.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// envelope is the success/message wrapper many endpoints share.
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

// NewClient builds a Client using the provided server base URL.
func NewClient(serverURL string) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// get issues a GET request and decodes the JSON response into dest.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, dest)
}

// do issues a JSON request. A non-nil body is encoded as JSON. When the
// server returns a 4xx/5xx carrying a success/message envelope, the
// server message is preserved as an *Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, dest)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	rel := &url.URL{Path: path}
	if len(query) > 0 {
		rel.RawQuery = query.Encode()
	}
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

func (c *Client) send(req *http.Request, dest any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		// Error responses often still carry the success/message
		// envelope; keep the server's message when they do.
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err == nil && env.Message != "" {
			return &Error{Message: env.Message}
		}
		return fmt.Errorf("api %s returned status %d", req.URL.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

func userIDQuery(userID int64) url.Values {
	values := url.Values{}
	values.Set("userId", formatID(userID))
	return values
}

func formatID(id int64) string {
	return fmt.Sprintf("%d", id)
}
