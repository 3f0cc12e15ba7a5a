// Package horizons fetches heliocentric state vectors from the JPL
// Horizons API (https://ssd.jpl.nasa.gov/api/horizons.api).
package horizons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/logging"
)

// DefaultBaseURL is the public Horizons API endpoint.
const DefaultBaseURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

// SunCenter is the observer-location code for a Sun-centered frame.
const SunCenter = "500@0"

var (
	// ErrServiceFailure indicates a non-OK response from the service.
	ErrServiceFailure = errors.New("horizons: service request failed")

	// ErrMalformedResponse indicates a payload the vector parser could not
	// make sense of.
	ErrMalformedResponse = errors.New("horizons: malformed response")
)

// Query describes one vector-table request.
type Query struct {
	Command  string // body designation or numeric ID
	Center   string // observer location, SunCenter when empty
	Start    time.Time
	Stop     time.Time
	StepDays int
}

// Client issues vector-table queries. The zero value is not usable; use
// NewClient.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse is the JSON envelope around the ephemeris text payload.
type apiResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Vectors fetches the position series for one body over the query range.
// Failures are terminal: no retries, no partial results.
func (c *Client) Vectors(ctx context.Context, q Query) (ephem.Series, error) {
	req, err := c.buildRequest(ctx, q)
	if err != nil {
		return nil, err
	}

	logging.L().Debug("horizons request",
		"command", q.Command,
		"start", q.Start.Format("2006-01-02"),
		"stop", q.Stop.Format("2006-01-02"),
		"step_days", q.StepDays)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrServiceFailure, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s for %s", ErrServiceFailure, resp.Status, q.Command)
	}

	var env apiResponse
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if env.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrServiceFailure, env.Error)
	}

	series, err := ParseVectorTable(env.Result)
	if err != nil {
		return nil, fmt.Errorf("parsing vectors for %s: %w", q.Command, err)
	}

	logging.L().Debug("horizons response",
		"command", q.Command,
		"samples", len(series),
		"missing", series.MissingCount())

	return series, nil
}

func (c *Client) buildRequest(ctx context.Context, q Query) (*http.Request, error) {
	if q.Command == "" {
		return nil, fmt.Errorf("horizons: empty body identifier")
	}
	if q.StepDays <= 0 {
		return nil, ephem.ErrInvalidStep
	}

	center := q.Center
	if center == "" {
		center = SunCenter
	}

	// Horizons expects most values wrapped in single quotes.
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", quote(q.Command))
	params.Set("OBJ_DATA", quote("NO"))
	params.Set("MAKE_EPHEM", quote("YES"))
	params.Set("EPHEM_TYPE", quote("VECTORS"))
	params.Set("CENTER", quote(center))
	params.Set("START_TIME", quote(q.Start.Format("2006-01-02")))
	params.Set("STOP_TIME", quote(q.Stop.Format("2006-01-02")))
	params.Set("STEP_SIZE", quote(fmt.Sprintf("%d d", q.StepDays)))
	params.Set("VEC_TABLE", quote("1"))
	params.Set("OUT_UNITS", quote("AU-D"))
	params.Set("CSV_FORMAT", quote("YES"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func quote(s string) string { return "'" + s + "'" }
