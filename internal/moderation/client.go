package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/ratelimit"

	"eventmod/internal/config"
	"eventmod/internal/domain"
)

// maxErrorBody bounds how much of an error response is kept
const maxErrorBody = 512

// ServiceError is returned when the service answers with a non-2xx status
type ServiceError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: service returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: service returned %d: %s", e.Op, e.StatusCode, e.Body)
}

// Verdict is the parsed answer of the validity check
type Verdict struct {
	Valid   []domain.Action
	Invalid []domain.Action
	Unknown []string // names the client does not recognise
}

// Client talks to the moderation service
type Client struct {
	baseURL     *url.URL
	httpClient  *http.Client
	limiter     ratelimit.Limiter
	checkPath   string
	checkMethod string
	actionPath  string
	eventsPath  string
	token       string
	cookie      string
	location    *time.Location
	eventsFile  string
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLocation sets the zone event times are interpreted in
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

// WithEventsFile reads the listing from a local export instead of the service
func WithEventsFile(path string) Option {
	return func(c *Client) { c.eventsFile = path }
}

// New creates a client from the service configuration
func New(cfg config.ServiceConfig, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", cfg.BaseURL)
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RatePerSecond > 0 {
		limiter = ratelimit.New(cfg.RatePerSecond)
	}

	c := &Client{
		baseURL:     base,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout.Duration},
		limiter:     limiter,
		checkPath:   cfg.CheckPath,
		checkMethod: strings.ToUpper(cfg.CheckMethod),
		actionPath:  cfg.ActionPath,
		eventsPath:  cfg.EventsPath,
		token:       cfg.Token,
		cookie:      cfg.Cookie,
		location:    time.Local,
	}
	if c.checkMethod == "" {
		c.checkMethod = http.MethodPost
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// CheckActions asks which bulk actions may be performed on the events
func (c *Client) CheckActions(ctx context.Context, eventIDs []string) (Verdict, error) {
	form, err := eventsForm(eventIDs)
	if err != nil {
		return Verdict{}, err
	}

	body, err := c.do(ctx, "validity check", c.checkMethod, c.checkPath, form)
	if err != nil {
		return Verdict{}, err
	}

	var raw struct {
		Valid   []string `json:"valid"`
		Invalid []string `json:"invalid"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Verdict{}, fmt.Errorf("validity check: decode response: %w", err)
	}

	var v Verdict
	for _, name := range raw.Valid {
		if a, err := domain.ParseAction(name); err == nil {
			v.Valid = append(v.Valid, a)
		} else {
			v.Unknown = append(v.Unknown, name)
		}
	}
	for _, name := range raw.Invalid {
		if a, err := domain.ParseAction(name); err == nil {
			v.Invalid = append(v.Invalid, a)
		} else {
			v.Unknown = append(v.Unknown, name)
		}
	}
	if len(v.Unknown) > 0 {
		log.Printf("Moderation: ignoring unknown actions in verdict: %v", v.Unknown)
	}
	return v, nil
}

// Execute performs a bulk action. Any non-2xx answer is a failure.
func (c *Client) Execute(ctx context.Context, action domain.Action, eventIDs []string) error {
	form, err := eventsForm(eventIDs)
	if err != nil {
		return err
	}
	form.Set("action", string(action))

	_, err = c.do(ctx, "bulk "+string(action), http.MethodPost, c.actionPath, form)
	return err
}

// eventJSON is the event summary the service exports
type eventJSON struct {
	ID            flexString `json:"id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	Member        string     `json:"member"`
	Type          string     `json:"type"`
	Rooms         []string   `json:"rooms"`
	EstimatedSize flexString `json:"estimated_size"`
	StartTime     string     `json:"start_time"`
	EndTime       string     `json:"end_time"`
}

// flexString accepts a JSON string or number
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// eventTimeLayout is the timestamp format of the export
const eventTimeLayout = "2006-01-02T15:04:05"

// ListEvents fetches the event export
func (c *Client) ListEvents(ctx context.Context) ([]domain.Event, error) {
	if c.eventsFile != "" {
		data, err := os.ReadFile(c.eventsFile)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		return DecodeEvents(data, c.location)
	}

	body, err := c.do(ctx, "list events", http.MethodGet, c.eventsPath, nil)
	if err != nil {
		return nil, err
	}
	return DecodeEvents(body, c.location)
}

// DecodeEvents parses an event export document
func DecodeEvents(data []byte, loc *time.Location) ([]domain.Event, error) {
	if loc == nil {
		loc = time.Local
	}

	var raw []eventJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}

	events := make([]domain.Event, 0, len(raw))
	for _, r := range raw {
		ev := domain.Event{
			ID:            string(r.ID),
			Name:          r.Name,
			Status:        r.Status,
			Member:        r.Member,
			Type:          r.Type,
			Rooms:         r.Rooms,
			EstimatedSize: string(r.EstimatedSize),
		}
		if ev.ID == "" {
			return nil, fmt.Errorf("decode events: event %q has no id", r.Name)
		}
		if r.StartTime != "" {
			start, err := time.ParseInLocation(eventTimeLayout, r.StartTime, loc)
			if err != nil {
				return nil, fmt.Errorf("decode events: event %s start: %w", ev.ID, err)
			}
			ev.Start = start
		}
		if r.EndTime != "" {
			end, err := time.ParseInLocation(eventTimeLayout, r.EndTime, loc)
			if err != nil {
				return nil, fmt.Errorf("decode events: event %s end: %w", ev.ID, err)
			}
			ev.End = end
		}
		events = append(events, ev)
	}
	return events, nil
}

func eventsForm(eventIDs []string) (url.Values, error) {
	if eventIDs == nil {
		eventIDs = []string{}
	}
	encoded, err := json.Marshal(eventIDs)
	if err != nil {
		return nil, fmt.Errorf("encode event ids: %w", err)
	}
	return url.Values{"events": {string(encoded)}}, nil
}

// errorSnippet trims a response body to maxErrorBody bytes on a rune boundary
func errorSnippet(data []byte) string {
	snippet := strings.TrimSpace(string(data))
	if len(snippet) <= maxErrorBody {
		return snippet
	}
	n := maxErrorBody
	for n > 0 && !utf8.RuneStart(snippet[n]) {
		n--
	}
	return snippet[:n]
}

func (c *Client) do(ctx context.Context, op, method, path string, form url.Values) ([]byte, error) {
	target := c.baseURL.JoinPath(path)

	var body io.Reader
	if method == http.MethodGet {
		if form != nil {
			target.RawQuery = form.Encode()
		}
	} else if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	c.limiter.Take()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServiceError{Op: op, StatusCode: resp.StatusCode, Body: errorSnippet(data)}
	}
	return data, nil
}
