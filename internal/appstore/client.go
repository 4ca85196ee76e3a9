// Package appstore maps the App Store Connect analytics resource hierarchy
// (report request, report, instance, segment) to typed calls and downloads
// report segments to local files. The client is stateless beyond its bearer
// token: no retries, no caching.
package appstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yukhold/indlovu/internal/catalog"
	"github.com/yukhold/indlovu/internal/config"
)

// Request timeouts. Hardcoded ceilings, not configurable per call.
const (
	requestTimeout  = 30 * time.Second
	downloadTimeout = 120 * time.Second
)

// Report request access types.
const (
	AccessOneTimeSnapshot = "ONE_TIME_SNAPSHOT"
	AccessOngoing         = "ONGOING"
)

// ReportRequest is a top-level handle authorizing a batch of analytics
// reports for one app.
type ReportRequest struct {
	ID         string
	AccessType string
	Stale      bool
}

// Report is a named analytics dataset family available under a request.
type Report struct {
	ID       string
	Name     string
	Category string
}

// Instance is one time-bucketed materialization of a report.
type Instance struct {
	ID             string
	Granularity    string
	ProcessingDate string
}

// Segment is one downloadable file chunk belonging to an instance.
type Segment struct {
	ID          string
	URL         string
	Checksum    string
	SizeInBytes int64
}

// Client talks to the App Store Connect analytics API.
type Client struct {
	baseURL   string
	appID     string
	token     string
	api       *http.Client
	downloads *http.Client
}

// NewClient builds a client from the configuration and a bearer token
// issued for this run.
func NewClient(cfg *config.Config, token string) *Client {
	return &Client{
		baseURL:   cfg.APIBaseURL,
		appID:     cfg.AppID,
		token:     token,
		api:       &http.Client{Timeout: requestTimeout},
		downloads: &http.Client{Timeout: downloadTimeout},
	}
}

// Wire envelope. Every analytics API response wraps its payload in a
// "data" member; attributes carries the union of fields the five resource
// kinds use.
type envelope struct {
	Data []resource `json:"data"`
}

type singleEnvelope struct {
	Data resource `json:"data"`
}

type resource struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	AccessType     string `json:"accessType"`
	Stale          bool   `json:"stale"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	Granularity    string `json:"granularity"`
	ProcessingDate string `json:"processingDate"`
	URL            string `json:"url"`
	Checksum       string `json:"checksum"`
	SizeInBytes    int64  `json:"sizeInBytes"`
}

// CreateReportRequest creates a new analytics report request for the app
// and returns its ID. A response without data.id is a construction error.
func (c *Client) CreateReportRequest(ctx context.Context, accessType string) (string, error) {
	payload := map[string]any{
		"data": map[string]any{
			"type":       "analyticsReportRequests",
			"attributes": map[string]any{"accessType": accessType},
			"relationships": map[string]any{
				"app": map[string]any{
					"data": map[string]any{"type": "apps", "id": c.appID},
				},
			},
		},
	}

	var created singleEnvelope
	if err := c.post(ctx, c.baseURL+"/analyticsReportRequests", payload, &created); err != nil {
		return "", err
	}

	if created.Data.ID == "" {
		return "", ErrMissingRequestID
	}

	return created.Data.ID, nil
}

// ListReportRequests lists all analytics report requests for the app.
func (c *Client) ListReportRequests(ctx context.Context) ([]ReportRequest, error) {
	endpoint := fmt.Sprintf("%s/apps/%s/analyticsReportRequests", c.baseURL, c.appID)

	var env envelope
	if err := c.get(ctx, endpoint, nil, &env); err != nil {
		return nil, err
	}

	requests := make([]ReportRequest, 0, len(env.Data))
	for _, item := range env.Data {
		requests = append(requests, ReportRequest{
			ID:         item.ID,
			AccessType: item.Attributes.AccessType,
			Stale:      item.Attributes.Stale,
		})
	}

	return requests, nil
}

// ListReports lists the reports available under a report request,
// optionally filtered by category (e.g. "APP_USAGE", "COMMERCE").
func (c *Client) ListReports(ctx context.Context, requestID, category string) ([]Report, error) {
	endpoint := fmt.Sprintf("%s/analyticsReportRequests/%s/reports", c.baseURL, requestID)

	params := url.Values{}
	if category != "" {
		params.Set("filter[category]", category)
	}

	var env envelope
	if err := c.get(ctx, endpoint, params, &env); err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(env.Data))
	for _, item := range env.Data {
		reports = append(reports, Report{
			ID:       item.ID,
			Name:     item.Attributes.Name,
			Category: item.Attributes.Category,
		})
	}

	return reports, nil
}

// ListInstances lists the instances of a report, optionally filtered
// server-side by granularity. Order is as received from the server; the
// orchestrator treats the first entry as the one to download.
func (c *Client) ListInstances(ctx context.Context, reportID string, granularity catalog.Granularity) ([]Instance, error) {
	endpoint := fmt.Sprintf("%s/analyticsReports/%s/instances", c.baseURL, reportID)

	params := url.Values{}
	if granularity != "" {
		params.Set("filter[granularity]", string(granularity))
	}

	var env envelope
	if err := c.get(ctx, endpoint, params, &env); err != nil {
		return nil, err
	}

	instances := make([]Instance, 0, len(env.Data))
	for _, item := range env.Data {
		instances = append(instances, Instance{
			ID:             item.ID,
			Granularity:    item.Attributes.Granularity,
			ProcessingDate: item.Attributes.ProcessingDate,
		})
	}

	return instances, nil
}

// ListSegments lists the downloadable segments of a report instance.
func (c *Client) ListSegments(ctx context.Context, instanceID string) ([]Segment, error) {
	endpoint := fmt.Sprintf("%s/analyticsReportInstances/%s/segments", c.baseURL, instanceID)

	var env envelope
	if err := c.get(ctx, endpoint, nil, &env); err != nil {
		return nil, err
	}

	segments := make([]Segment, 0, len(env.Data))
	for _, item := range env.Data {
		segments = append(segments, Segment{
			ID:          item.ID,
			URL:         item.Attributes.URL,
			Checksum:    item.Attributes.Checksum,
			SizeInBytes: item.Attributes.SizeInBytes,
		})
	}

	return segments, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if len(params) > 0 {
		endpoint = endpoint + "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.api.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &RemoteError{Status: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
