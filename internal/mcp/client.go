package mcp

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

	"github.com/google/uuid"

	"github.com/ngoachoi-cell/breaklistweb/internal/models"
)

// Client calls the breaklist HTTP API. Redirects are not followed; a 303 is
// the API's success signal for navigation-style operations.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// View returns the schedule, or nil when the server reports it is empty.
func (c *Client) View(ctx context.Context) (*models.ScheduleView, error) {
	resp, body, err := c.do(ctx, http.MethodGet, "/breaklist", nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusSeeOther {
		return nil, nil
	}
	var v models.ScheduleView
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return &v, nil
}

func (c *Client) AddRow(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodPost, "/breaklist/rows", nil)
	return err
}

func (c *Client) UpdateRow(ctx context.Context, id string, req models.UpdateRowRequest) (*models.Row, error) {
	_, body, err := c.do(ctx, http.MethodPatch, "/breaklist/rows/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	var row models.Row
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	return &row, nil
}

func (c *Client) DeleteRow(ctx context.Context, id string) error {
	_, _, err := c.do(ctx, http.MethodDelete, "/breaklist/rows/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) Sort(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodPost, "/breaklist/sort", nil)
	return err
}

func (c *Client) SetCell(ctx context.Context, req models.UpdateCellRequest) error {
	_, _, err := c.do(ctx, http.MethodPut, "/breaklist/cells", req)
	return err
}

func (c *Client) Reorder(ctx context.Context, orderedIDs string) error {
	_, _, err := c.do(ctx, http.MethodPost, "/breaklist/reorder", models.ReorderRequest{OrderedIDs: orderedIDs})
	return err
}

func (c *Client) Clear(ctx context.Context) error {
	_, _, err := c.do(ctx, http.MethodPost, "/breaklist/clear", nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", "mcp-"+uuid.New().String()[:8])

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg := strings.TrimSpace(string(respBody))
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return resp, respBody, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return resp, respBody, nil
}
