// Package jira contains the HTTP adapter for the JIRA REST API v2. It
// implements the IssueDirectory and WorklogPublisher secondary ports.
package jira

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

	"github.com/example/track/internal/core/worklog"
	"github.com/example/track/internal/ports/secondary"
)

// startedFormat is the timestamp layout the worklog endpoint insists on.
const startedFormat = "2006-01-02T15:04:05.000-0700"

// ErrIssueNotFound is returned when the tracker has no issue for a key.
type ErrIssueNotFound struct {
	Key string
}

func (e ErrIssueNotFound) Error() string {
	return fmt.Sprintf("no issue exists for key %s", e.Key)
}

// ErrIssueGet is returned for lookup failures other than a missing issue.
type ErrIssueGet struct {
	Key   string
	Cause error
}

func (e ErrIssueGet) Error() string {
	return fmt.Sprintf("failed to get issue info for %s", e.Key)
}

func (e ErrIssueGet) Unwrap() error {
	return e.Cause
}

// ErrStintPost is returned when publishing a single stint fails. The stint
// stays unpublished so the user can retry later.
type ErrStintPost struct {
	Issue string
	Stint worklog.Stint
	Cause error
}

func (e ErrStintPost) Error() string {
	return fmt.Sprintf("failed to publish stint %s to %s", e.Stint, e.Issue)
}

func (e ErrStintPost) Unwrap() error {
	return e.Cause
}

// Options configure the client against one JIRA instance.
type Options struct {
	Host          string // API host name, without scheme
	Token         string // personal access token
	DefaultGroup  string // worklog visibility group, empty for unrestricted
	EpicLinkField string // custom field ID holding the epic link
}

// Client talks to a JIRA instance. It implements secondary.IssueDirectory
// and secondary.WorklogPublisher.
type Client struct {
	opts Options
	http *http.Client
}

var (
	_ secondary.IssueDirectory   = (*Client)(nil)
	_ secondary.WorklogPublisher = (*Client)(nil)
)

// NewClient creates a client for the given instance. A nil httpClient uses
// http.DefaultClient.
func NewClient(opts Options, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{opts: opts, http: httpClient}
}

// PublishStint posts one finished stint as a worklog entry on an issue.
func (c *Client) PublishStint(ctx context.Context, issue, comment string, stint worklog.Stint) error {
	body := map[string]any{
		"comment":          comment,
		"started":          stint.Begin.Format(startedFormat),
		"timeSpentSeconds": stint.Seconds(),
	}
	if c.opts.DefaultGroup != "" {
		body["visibility"] = map[string]string{
			"type":  "group",
			"value": c.opts.DefaultGroup,
		}
	}

	endpoint := c.url("/rest/api/2/issue/"+url.PathEscape(issue)+"/worklog", nil)
	if err := c.post(ctx, endpoint, body); err != nil {
		return ErrStintPost{Issue: issue, Stint: stint, Cause: err}
	}
	return nil
}

// GetIssue retrieves the summary and epic link for an issue key.
func (c *Client) GetIssue(ctx context.Context, key string) (secondary.IssueInfo, error) {
	fields := []string{"summary"}
	if c.opts.EpicLinkField != "" {
		fields = append(fields, c.opts.EpicLinkField)
	}
	endpoint := c.url("/rest/api/2/issue/"+url.PathEscape(key), url.Values{
		"fields": []string{strings.Join(fields, ",")},
	})

	var payload struct {
		Fields map[string]json.RawMessage `json:"fields"`
	}
	status, err := c.get(ctx, endpoint, &payload)
	if err != nil {
		if status == http.StatusNotFound {
			return secondary.IssueInfo{}, ErrIssueNotFound{Key: key}
		}
		return secondary.IssueInfo{}, ErrIssueGet{Key: key, Cause: err}
	}

	info := secondary.IssueInfo{Key: key}
	if raw, ok := payload.Fields["summary"]; ok {
		if err := json.Unmarshal(raw, &info.Summary); err != nil {
			return secondary.IssueInfo{}, ErrIssueGet{Key: key, Cause: err}
		}
	}
	if raw, ok := payload.Fields[c.opts.EpicLinkField]; ok && c.opts.EpicLinkField != "" {
		// The epic link field is null for issues without an epic.
		var epic *string
		if err := json.Unmarshal(raw, &epic); err == nil && epic != nil {
			info.EpicKey = *epic
		}
	}
	return info, nil
}

// GetFields maps field names to field IDs. Reconfiguration uses it to
// resolve the epic link custom field by its display name.
func (c *Client) GetFields(ctx context.Context) (map[string]string, error) {
	var payload []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if _, err := c.get(ctx, c.url("/rest/api/2/field", nil), &payload); err != nil {
		return nil, fmt.Errorf("failed to get field info: %w", err)
	}

	fields := make(map[string]string, len(payload))
	for _, field := range payload {
		fields[field.Name] = field.ID
	}
	return fields, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := url.URL{Scheme: "https", Host: c.opts.Host, Path: path}
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) post(ctx context.Context, endpoint string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp)
	}
	return nil
}

// get decodes a JSON response into out and returns the HTTP status code
// alongside any error, so callers can special-case 404.
func (c *Client) get(ctx context.Context, endpoint string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.opts.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, statusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// statusError builds an error from a non-2xx response, folding in any
// errorMessages the API includes in its body.
func statusError(resp *http.Response) error {
	msg := fmt.Sprintf("%s %s returned %s", resp.Request.Method, resp.Request.URL.Path, resp.Status)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("%s", msg)
	}
	var payload struct {
		ErrorMessages []string `json:"errorMessages"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && len(payload.ErrorMessages) > 0 {
		msg += ": " + strings.Join(payload.ErrorMessages, "; ")
	}
	return fmt.Errorf("%s", msg)
}

// timeout guards field and issue lookups triggered from interactive flows.
const lookupTimeout = 10 * time.Second

// LookupContext derives a context with the interactive lookup timeout.
func LookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, lookupTimeout)
}
