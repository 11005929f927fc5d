package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pigmento/internal/workbook"
)

const defaultTimeout = 30 * time.Second

// Config describes how the remote worksheet client should be initialised.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a thin wrapper around a remote worksheet service speaking JSON
// over HTTP. It implements workbook.Store so the rest of the application
// cannot tell a remote spreadsheet from a local workbook file.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a Client for the remote worksheet service.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("sheets: base URL must not be empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      strings.TrimSpace(cfg.Token),
		httpClient: httpClient,
	}, nil
}

type sheetPayload struct {
	Header   []string   `json:"header"`
	Rows     [][]string `json:"rows"`
	Revision uint64     `json:"revision"`
}

// Load fetches the named worksheet. Connectivity failures are reported as
// workbook.ErrSheetUnavailable so callers can fall back to the CSV cache.
func (c *Client) Load(ctx context.Context, sheet string) (workbook.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.sheetURL(sheet), nil)
	if err != nil {
		return workbook.Table{}, fmt.Errorf("sheets: build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return workbook.Table{}, fmt.Errorf("%w: fetch sheet %s: %v", workbook.ErrSheetUnavailable, sheet, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// A worksheet that has never been written yet.
		return workbook.Table{Sheet: sheet}, nil
	case resp.StatusCode >= http.StatusMultipleChoices:
		return workbook.Table{}, fmt.Errorf("%w: sheet %s returned status %s", workbook.ErrSheetUnavailable, sheet, resp.Status)
	}

	var payload sheetPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return workbook.Table{}, fmt.Errorf("%w: decode sheet %s: %v", workbook.ErrSheetUnavailable, sheet, err)
	}

	return workbook.Table{
		Sheet:    sheet,
		Header:   payload.Header,
		Rows:     payload.Rows,
		Revision: payload.Revision,
	}, nil
}

// Save replaces the remote worksheet contents in full. A conflict response
// maps to workbook.ErrStaleRevision.
func (c *Client) Save(ctx context.Context, table workbook.Table) error {
	body, err := json.Marshal(sheetPayload{
		Header:   table.Header,
		Rows:     table.Rows,
		Revision: table.Revision,
	})
	if err != nil {
		return fmt.Errorf("sheets: encode sheet %s: %w", table.Sheet, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.sheetURL(table.Sheet), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sheets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: write sheet %s: %v", workbook.ErrSheetUnavailable, table.Sheet, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: sheet %s", workbook.ErrStaleRevision, table.Sheet)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("%w: sheet %s returned status %s", workbook.ErrSheetUnavailable, table.Sheet, resp.Status)
	}
	return nil
}

func (c *Client) sheetURL(sheet string) string {
	return c.baseURL + "/sheets/" + url.PathEscape(sheet)
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
