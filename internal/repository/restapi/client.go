package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"go-jobboard-web/internal/domain"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxResponseBytes caps how much of an API response is read.
const maxResponseBytes = 10 << 20

// Client talks to the job-board REST API. Repositories share one Client.
type Client struct {
	baseURL    string
	origin     string
	httpClient *http.Client
}

// NewClient builds a client for baseURL (e.g. http://localhost:8000/api).
// origin is used to resolve server-relative file paths; when empty it is
// derived from baseURL.
func NewClient(baseURL, origin string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if origin == "" {
		if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
			origin = u.Scheme + "://" + u.Host
		}
	}
	return &Client{
		baseURL:    baseURL,
		origin:     strings.TrimRight(origin, "/"),
		httpClient: httpClient,
	}
}

// ResolveFileURL turns a server-relative path such as /media/cvs/a.pdf into
// an absolute link on the API origin. Absolute URLs pass through.
func (c *Client) ResolveFileURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.origin + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, session *domain.Session, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if session.Authenticated() {
		req.Header.Set("Authorization", "Token "+session.Token)
	}
	return req, nil
}

// do sends req and returns the response body. Non-2xx responses become
// *APIError; failures before a response arrive become *TransportError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: req.Method + " " + req.URL.Path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Op: req.Method + " " + req.URL.Path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) getJSON(ctx context.Context, path string, session *domain.Session, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, session, nil)
	if err != nil {
		return err
	}
	body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeInto(path, body, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, session *domain.Session, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s body: %w", path, err)
	}
	req, err := c.newRequest(ctx, method, path, session, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeInto(path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, session *domain.Session) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, session, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

// getList fetches a collection, accepting either a bare array or a
// paginated {"results": [...]} envelope.
func getList[T any](ctx context.Context, c *Client, path string, session *domain.Session) ([]T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, session, nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}

// decodeList normalizes both list envelopes to a non-nil slice.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	var items []T
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '[':
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
	default:
		var page struct {
			Results []T `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return nil, err
		}
		items = page.Results
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeInto(path string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func itemPath(collection string, id int64) string {
	return fmt.Sprintf("/%s/%d/", collection, id)
}
