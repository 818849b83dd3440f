// Package rest provides the avapi.Client implementation backed by the scan
// service's HTTP API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"avdash/pkg/avapi"
	"avdash/pkg/domain"
	"avdash/pkg/serrors"
)

// Options configure the REST client.
type Options struct {
	// BaseURL is the root of the scan service, e.g. "http://localhost:8001".
	BaseURL string
	// RequestTimeout bounds each individual call so a stalled backend cannot
	// hang a poll tick. 0 disables the per-call bound.
	RequestTimeout time.Duration
	// MaxRPS throttles outgoing requests; 0 means unlimited.
	MaxRPS float64
}

// Client talks to the scan service REST API and fulfills the avapi.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Ensure Client conforms to the avapi.Client interface at compile time.
var _ avapi.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client against the
// configured base URL.
func New(httpClient *http.Client, opts Options) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		timeout:    opts.RequestTimeout,
	}
	if opts.MaxRPS > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), 1)
	}

	return c
}

// statusError carries a non-2xx HTTP status and the server-provided detail
// message so each operation can map it to its semantic kind.
type statusError struct {
	status int
	detail string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.status, e.detail)
}

// detailBody matches FastAPI's error envelope.
type detailBody struct {
	Detail string `json:"detail"`
}

// do issues one request and decodes a 2xx JSON response into out. Non-2xx
// responses return a *statusError; transport failures and per-call deadline
// hits return semantic errors directly.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("could not wait for rate limiter: %w", err)
		}
	}

	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return serrors.Wrap(serrors.ErrTimeout, err, "request timed out")
		}

		return serrors.Wrap(serrors.ErrNetwork, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return serrors.Wrap(serrors.ErrNetwork, err, "could not read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var d detailBody
		if json.Unmarshal(b, &d) != nil || d.Detail == "" {
			d.Detail = strings.TrimSpace(string(b))
		}

		return &statusError{status: resp.StatusCode, detail: d.Detail}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}

// StartScan submits directoryPath for asynchronous scanning and returns the
// backend-assigned scan id.
func (c *Client) StartScan(ctx context.Context, directoryPath string, scanType domain.ScanType) (string, error) {
	type startReq struct {
		DirectoryPath string `json:"directory_path"`
		ScanType      string `json:"scan_type"`
	}
	var startResp struct {
		ScanID string `json:"scan_id"`
	}
	if scanType == "" {
		scanType = domain.ScanTypeQuick
	}

	err := c.do(ctx, http.MethodPost, "/api/scan/start",
		startReq{DirectoryPath: directoryPath, ScanType: string(scanType)}, &startResp)
	if err != nil {
		var sErr *statusError
		if errors.As(err, &sErr) && sErr.status == http.StatusBadRequest {
			return "", serrors.With(serrors.ErrValidation, "%s", sErr.detail)
		}

		return "", fmt.Errorf("start scan failed: %w", err)
	}
	if startResp.ScanID == "" {
		return "", fmt.Errorf("start scan returned no scan id")
	}

	return startResp.ScanID, nil
}

// ScanStatus fetches the current state of the scan job.
func (c *Client) ScanStatus(ctx context.Context, scanID string) (*domain.ScanJob, error) {
	var job domain.ScanJob
	err := c.do(ctx, http.MethodGet, "/api/scan/status/"+url.PathEscape(scanID), nil, &job)
	if err != nil {
		var sErr *statusError
		if errors.As(err, &sErr) && sErr.status == http.StatusNotFound {
			return nil, serrors.With(serrors.ErrNotFound, "scan %q not found", scanID)
		}

		return nil, fmt.Errorf("get scan status failed: %w", err)
	}
	if job.ID == "" {
		job.ID = scanID
	}

	return &job, nil
}

// ScanResults fetches per-file results for the scan, newest first.
func (c *Client) ScanResults(ctx context.Context, scanID string, page avapi.Page) ([]domain.ScanResultEntry, error) {
	path := "/api/scan/results/" + url.PathEscape(scanID)
	q := url.Values{}
	if page.Skip > 0 {
		q.Set("skip", strconv.Itoa(page.Skip))
	}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resultsResp struct {
		ScanID  string                   `json:"scan_id"`
		Results []domain.ScanResultEntry `json:"results"`
		Count   int                      `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resultsResp); err != nil {
		var sErr *statusError
		if errors.As(err, &sErr) && sErr.status == http.StatusNotFound {
			return nil, serrors.With(serrors.ErrNotFound, "scan %q not found", scanID)
		}

		return nil, fmt.Errorf("get scan results failed: %w", err)
	}

	return resultsResp.Results, nil
}

// ScanHistory lists past scan jobs, newest first. History entries carry a
// scan_completed flag instead of a status field, so the status is derived
// from it when absent.
func (c *Client) ScanHistory(ctx context.Context, limit int) ([]domain.ScanJob, error) {
	path := "/api/scans/history"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var historyResp struct {
		Scans []struct {
			domain.ScanJob
			Completed *bool `json:"scan_completed"`
		} `json:"scans"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &historyResp); err != nil {
		return nil, fmt.Errorf("get scan history failed: %w", err)
	}

	scans := make([]domain.ScanJob, 0, len(historyResp.Scans))
	for _, entry := range historyResp.Scans {
		job := entry.ScanJob
		if job.Status == "" && entry.Completed != nil {
			if *entry.Completed {
				job.Status = domain.ScanStatusCompleted
			} else {
				job.Status = domain.ScanStatusInProgress
			}
		}
		scans = append(scans, job)
	}

	return scans, nil
}

// Quarantine lists quarantined files, newest first.
func (c *Client) Quarantine(ctx context.Context) ([]domain.QuarantineEntry, error) {
	var quarantineResp struct {
		Items []domain.QuarantineEntry `json:"quarantine_items"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/quarantine", nil, &quarantineResp); err != nil {
		return nil, fmt.Errorf("get quarantine failed: %w", err)
	}

	return quarantineResp.Items, nil
}

// quarantineAction shares the error mapping of restore and delete: unknown
// ids are 404, actions not applicable to the entry's current state are 400.
func (c *Client) quarantineAction(ctx context.Context, method, path, quarantineID string) error {
	err := c.do(ctx, method, path, nil, nil)
	if err == nil {
		return nil
	}

	var sErr *statusError
	if errors.As(err, &sErr) {
		switch sErr.status {
		case http.StatusNotFound:
			return serrors.With(serrors.ErrNotFound, "quarantine item %q not found", quarantineID)
		case http.StatusBadRequest, http.StatusConflict:
			return serrors.With(serrors.ErrConflict, "%s", sErr.detail)
		}
	}

	return err
}

// RestoreQuarantine moves a quarantined file back to its original path.
func (c *Client) RestoreQuarantine(ctx context.Context, quarantineID string) error {
	err := c.quarantineAction(ctx, http.MethodPost,
		"/api/quarantine/restore/"+url.PathEscape(quarantineID), quarantineID)
	if err != nil {
		return fmt.Errorf("restore quarantine item failed: %w", err)
	}

	return nil
}

// DeleteQuarantine permanently removes a quarantined file.
func (c *Client) DeleteQuarantine(ctx context.Context, quarantineID string) error {
	err := c.quarantineAction(ctx, http.MethodDelete,
		"/api/quarantine/delete/"+url.PathEscape(quarantineID), quarantineID)
	if err != nil {
		return fmt.Errorf("delete quarantine item failed: %w", err)
	}

	return nil
}

// Stats fetches the aggregate dashboard snapshot.
func (c *Client) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats); err != nil {
		return nil, fmt.Errorf("get dashboard stats failed: %w", err)
	}

	return &stats, nil
}

// Health verifies the backend is reachable and reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	var healthResp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &healthResp); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if healthResp.Status != "healthy" {
		return fmt.Errorf("backend reports status %q", healthResp.Status)
	}

	return nil
}
