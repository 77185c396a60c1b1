// Package api is a thin client for the task-progress REST API.
//
// Every call is a single attempt. A failed call posts a transient notice
// through the configured Notifier and returns the error.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"taskprog/internal/notify"
)

// FailureMessage is shown to the user when a call fails.
const FailureMessage = "Something went wrong, please try again later."

const maxBodySize = 4 << 20

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP error! status: %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Code)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

type Client struct {
	baseURL  string
	http     *http.Client
	notifier notify.Notifier
	logger   zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l.With().Str("component", "api").Logger() }
}

// New returns a client for the server at baseURL, e.g.
// "http://localhost:5000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTasks returns all tasks, or only those with status when it is set.
func (c *Client) ListTasks(ctx context.Context, status string) ([]Task, error) {
	path := "/api/tasks"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}
	var out taskList
	if err := c.call(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int) (Task, error) {
	var out taskEnvelope
	err := c.call(ctx, http.MethodGet, taskPath(id), nil, &out)
	return out.Task, err
}

func (c *Client) CreateTask(ctx context.Context, task NewTask) (Task, error) {
	var out taskEnvelope
	err := c.call(ctx, http.MethodPost, "/api/tasks", task, &out)
	return out.Task, err
}

func (c *Client) UpdateTask(ctx context.Context, id int, update TaskUpdate) (Task, error) {
	var out taskEnvelope
	err := c.call(ctx, http.MethodPut, taskPath(id), update, &out)
	return out.Task, err
}

// UpdateProgress sets a task's progress. The server derives the status
// from it.
func (c *Client) UpdateProgress(ctx context.Context, id, progress int) (Task, error) {
	var out taskEnvelope
	err := c.call(ctx, http.MethodPut, taskPath(id)+"/progress", progressBody{Progress: progress}, &out)
	return out.Task, err
}

// DeleteTask removes a task and returns the server's confirmation text.
func (c *Client) DeleteTask(ctx context.Context, id int) (string, error) {
	var out messageBody
	err := c.call(ctx, http.MethodDelete, taskPath(id), nil, &out)
	return out.Message, err
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.call(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out, err
}

func taskPath(id int) string {
	return "/api/tasks/" + strconv.Itoa(id)
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	err := c.do(ctx, method, path, body, out)
	if err != nil {
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("API call failed")
		if c.notifier != nil {
			c.notifier.Notify(FailureMessage, notify.Danger)
		}
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{Code: resp.StatusCode}
		var msg messageBody
		if sonic.Unmarshal(data, &msg) == nil {
			se.Message = msg.Error
		}
		return se
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
