package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// issueFields are the fields requested for listings and single-issue views.
const issueFields = "summary,description,issuetype,status,priority,assignee,reporter,labels,created,updated"

// API is the read-only surface command handlers depend on.
type API interface {
	GetIssue(ctx context.Context, key string, withComments bool) (*Issue, error)
	SearchIssues(ctx context.Context, jql string, maxResults int) ([]Issue, error)
	GetComments(ctx context.Context, key string) ([]Comment, error)
}

// APIError is an error response from the Jira REST API.
type APIError struct {
	StatusCode int    // HTTP status returned by Jira
	Body       string // raw response body, usually a JSON error document
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("jira: HTTP %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client handles communication with the Jira REST API.
type Client struct {
	APIURL *url.URL     // Base API URL (must include /rest/api/X)
	Client *http.Client // Underlying HTTP client
	auth   AuthFunc
}

// NewClient returns a Jira client with the given base URL and authentication function.
func NewClient(apiURL *url.URL, auth AuthFunc, skipVerify bool, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: skipVerify,
		},
	}
	return &Client{
		APIURL: apiURL,
		Client: &http.Client{Transport: tr, Timeout: timeout},
		auth:   auth,
	}
}

// GetIssue fetches a single issue by key. When withComments is true the
// comment thread is included in the issue fields.
func (c *Client) GetIssue(ctx context.Context, key string, withComments bool) (*Issue, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("missing issue key")
	}

	fields := issueFields
	if withComments {
		fields += ",comment"
	}
	path := "issue/" + url.PathEscape(key) + "?fields=" + url.QueryEscape(fields)

	body, _, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("issue %s not found", key)
		}
		return nil, err
	}

	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, fmt.Errorf("decode issue: %w", err)
	}
	return &issue, nil
}

// SearchIssues performs a JQL search bounded to maxResults and returns the
// matching issues of the first page.
func (c *Client) SearchIssues(ctx context.Context, jql string, maxResults int) ([]Issue, error) {
	if strings.TrimSpace(jql) == "" {
		return nil, fmt.Errorf("missing JQL query")
	}

	params := url.Values{}
	params.Set("jql", jql)
	params.Set("fields", issueFields)
	if maxResults > 0 {
		params.Set("maxResults", strconv.Itoa(maxResults))
	}

	body, _, err := c.doRequest(ctx, http.MethodGet, "search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode search result: %w", err)
	}
	return result.Issues, nil
}

// GetComments fetches the comment thread for an issue key.
func (c *Client) GetComments(ctx context.Context, key string) ([]Comment, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("missing issue key")
	}

	path := "issue/" + url.PathEscape(key) + "/comment"
	body, _, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("issue %s not found", key)
		}
		return nil, err
	}

	var page CommentPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return page.Comments, nil
}

// doRequest performs an authenticated HTTP request and returns response body, status, and error.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (response []byte, statusCode int, err error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	// Parse path into relative URL with optional query
	relURL, err := url.Parse(path)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("parse path: %w", err)
	}
	fullURL := c.APIURL.ResolveReference(relURL).String()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("create request: %w", err)
	}

	c.auth(req) // apply authentication

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, http.StatusBadGateway, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return respBody, resp.StatusCode, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return respBody, resp.StatusCode, nil
}
