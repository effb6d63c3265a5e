package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"callme/internal/models"
)

// DefaultBaseURL is the local development address of the reminders API.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Client talks to the reminders REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// List fetches reminders matching the filters. Unset filter fields are not
// sent at all.
func (c *Client) List(ctx context.Context, filters models.ReminderFilters) (*models.ReminderListResponse, error) {
	path := "/reminders"
	if q := filters.Values().Encode(); q != "" {
		path += "?" + q
	}
	var out models.ReminderListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single reminder by id.
func (c *Client) Get(ctx context.Context, id string) (*models.Reminder, error) {
	var out models.Reminder
	if err := c.do(ctx, http.MethodGet, "/reminders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create submits a new reminder and returns the server-assigned record.
func (c *Client) Create(ctx context.Context, req models.CreateReminderRequest) (*models.Reminder, error) {
	var out models.Reminder
	if err := c.do(ctx, http.MethodPost, "/reminders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update and returns the authoritative record.
func (c *Client) Update(ctx context.Context, id string, req models.UpdateReminderRequest) (*models.Reminder, error) {
	var out models.Reminder
	if err := c.do(ctx, http.MethodPut, "/reminders/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a reminder.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(id), nil, nil)
}

// do builds and sends a request, decoding the JSON response into out when out
// is non-nil. Non-2xx responses become APIErrors preferring the server's
// "detail" field; failures with no response at all get status 0 and a
// connectivity message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &APIError{Status: 0, Message: err.Error()}
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &APIError{Status: 0, Message: ctx.Err().Error()}
		}
		return &APIError{Status: 0, Message: NetworkErrorMessage}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload := map[string]interface{}{}
		raw, _ := io.ReadAll(resp.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				// Unparseable error body is treated as an empty payload
				payload = map[string]interface{}{}
			}
		}
		message, _ := payload["detail"].(string)
		if message == "" {
			message = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return &APIError{Status: resp.StatusCode, Message: message, Body: payload}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	return nil
}
