// Package mockapi implements the service.Service interface against a REST
// collection resource such as the one hosted on mockapi.io.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"todolist/internal/config"
	"todolist/internal/logging"
	"todolist/internal/metrics"
	"todolist/internal/service"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 10 * time.Second

	// RequestIDHeader carries the per-call request ID.
	RequestIDHeader = "X-Request-ID"

	tracerName = "todolist/backend/mockapi"
)

// Operation names used for logs, spans and metrics.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

var (
	// ErrNotFound is returned when the store answers 404.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the store answers 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTimeout is returned when a call exceeds APITimeout.
	ErrTimeout = errors.New("request timed out")
)

// Client implements service.Service over HTTP.
type Client struct {
	httpClient    *http.Client
	collectionURL string
	logger        *slog.Logger
	now           func() time.Time
}

// New creates a client for the store configured in cfg.
// A configured token is sent as a bearer token on every request.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if cfg.Token != "" {
		tokenSource := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(ctx, tokenSource)
	}

	c := NewWithHTTPClient(httpClient, cfg.CollectionURL())
	if logger != nil {
		c.logger = logger
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// collectionURL is the full URL of the collection, e.g. http://host/todolist.
func NewWithHTTPClient(httpClient *http.Client, collectionURL string) *Client {
	return &Client{
		httpClient:    httpClient,
		collectionURL: collectionURL,
		logger:        logging.Discard(),
		now:           time.Now,
	}
}

// SetNow replaces the clock used to date new items (for testing).
func (c *Client) SetNow(now func() time.Time) {
	c.now = now
}

// ListAll returns the whole collection in store order.
func (c *Client) ListAll(ctx context.Context) ([]service.TaskItem, error) {
	var items []wireItem
	if err := c.do(ctx, OpList, http.MethodGet, c.collectionURL, nil, &items); err != nil {
		return nil, err
	}

	result := make([]service.TaskItem, 0, len(items))
	for _, item := range items {
		result = append(result, item.toTaskItem())
	}
	return result, nil
}

// Create posts a new item dated today.
func (c *Client) Create(ctx context.Context, title string) (service.TaskItem, error) {
	body := wireItem{
		Title:     title,
		Completed: false,
		CreatedAt: service.Today(c.now()).String(),
	}

	var created wireItem
	if err := c.do(ctx, OpCreate, http.MethodPost, c.collectionURL, body, &created); err != nil {
		return service.TaskItem{}, err
	}
	return created.toTaskItem(), nil
}

// Update puts the set fields of patch and returns the store's version of the item.
func (c *Client) Update(ctx context.Context, id string, patch service.TaskPatch) (service.TaskItem, error) {
	var updated wireItem
	if err := c.do(ctx, OpUpdate, http.MethodPut, c.itemURL(id), toWirePatch(patch), &updated); err != nil {
		return service.TaskItem{}, err
	}
	return updated.toTaskItem(), nil
}

// Delete removes an item.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, OpDelete, http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id string) string {
	return c.collectionURL + "/" + url.PathEscape(id)
}

// do performs one store call. body is JSON-encoded when non-nil; the response
// is decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, op, method, target string, body, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	requestID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "todolist."+op,
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	start := time.Now()
	defer func() {
		dur := time.Since(start)
		metrics.ObserveStoreCall(op, dur, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.logger.Debug("store_request",
			slog.String("op", op),
			slog.String("method", method),
			slog.String("url", target),
			slog.String("request_id", requestID),
			slog.Float64("duration_ms", float64(dur.Microseconds())/1000.0),
			slog.Bool("ok", err == nil),
		)
	}()

	var reader io.Reader
	if body != nil {
		data, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal request: %w", marshalErr)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if err := googleapi.CheckResponse(resp); err != nil {
		return wrapError(err)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// wrapError maps transport and status errors to short user-facing errors.
// Status errors keep the *googleapi.Error in the chain.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w (check %s): %w", ErrUnauthorized, config.KeyToken, apiErr)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, apiErr)
		}
		return fmt.Errorf("store returned status %d: %w", apiErr.Code, apiErr)
	}

	return err
}
