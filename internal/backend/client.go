package backend

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

	"go.uber.org/zap"

	"github.com/username/schedule-viewer/internal/schedule"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultProcedure    = "get_schedule_by_range"
	defaultHolidayTable = "holidays"

	// DefaultMaxRows caps a single schedule query (rows 0..10000 inclusive)
	DefaultMaxRows = 10001
)

// Source is the narrow data-access boundary the orchestrator depends on.
// Tests inject a fake implementation; Client is the production one.
type Source interface {
	// FetchScheduleRange returns shift-turn rows for the inclusive date range
	FetchScheduleRange(ctx context.Context, start, end string) ([]schedule.Record, error)

	// FetchHolidays returns the set of public-holiday dates within the range
	FetchHolidays(ctx context.Context, start, end string) (map[string]struct{}, error)
}

// Config carries the connection settings for the hosted backend
type Config struct {
	BaseURL      string
	APIKey       string
	Procedure    string // stored procedure name, default get_schedule_by_range
	HolidayTable string // holiday reference table, default holidays
	MaxRows      int    // schedule row cap, default DefaultMaxRows
	Timeout      time.Duration
}

// Client implements Source against the hosted backend's REST surface
type Client struct {
	baseURL      string
	apiKey       string
	procedure    string
	holidayTable string
	maxRows      int
	httpClient   *http.Client
	logger       *zap.Logger
}

// NewClient creates a new backend client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Procedure == "" {
		cfg.Procedure = defaultProcedure
	}
	if cfg.HolidayTable == "" {
		cfg.HolidayTable = defaultHolidayTable
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = DefaultMaxRows
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		procedure:    cfg.Procedure,
		holidayTable: cfg.HolidayTable,
		maxRows:      cfg.MaxRows,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// FetchScheduleRange calls the schedule stored procedure for [start, end]
func (c *Client) FetchScheduleRange(ctx context.Context, start, end string) ([]schedule.Record, error) {
	req := scheduleRangeRequest{
		StartDate: start,
		EndDate:   end,
	}

	headers := map[string]string{
		// PostgREST row window: 0..maxRows-1 inclusive
		"Range":      fmt.Sprintf("0-%d", c.maxRows-1),
		"Range-Unit": "items",
	}

	var rows []scheduleRow
	path := "/rest/v1/rpc/" + c.procedure
	if err := c.doRequest(ctx, http.MethodPost, path, nil, headers, req, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch schedule range: %w", err)
	}

	records := make([]schedule.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, schedule.Record{
			Position: row.StaffPosition,
			Name:     row.Name,
			Date:     row.Date.String(),
			Turn:     row.Turn,
		})
	}

	c.logger.Info("Schedule rows fetched",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("count", len(records)))

	return records, nil
}

// FetchHolidays selects flagged dates from the holiday reference table
// within [start, end]
func (c *Client) FetchHolidays(ctx context.Context, start, end string) (map[string]struct{}, error) {
	query := url.Values{}
	query.Set("select", "locdate")
	query.Set("is_holiday", "eq.Y")
	query.Add("locdate", "gte."+start)
	query.Add("locdate", "lte."+end)

	var rows []holidayRow
	path := "/rest/v1/" + c.holidayTable
	if err := c.doRequest(ctx, http.MethodGet, path, query, nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}

	holidays := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		holidays[row.Locdate.String()] = struct{}{}
	}

	c.logger.Info("Holidays fetched",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// doRequest performs a single authenticated request. There is deliberately
// no retry loop: a failed fetch surfaces to the user, who retries by hand.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, headers map[string]string, body interface{}, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, errorMessage(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// errorMessage extracts the backend's message field from an error body,
// falling back to the raw body text
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
