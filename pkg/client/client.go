// Package client is a thin typed wrapper over the marketplace HTTP API, the
// counterpart of the frontend's service layer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	token string
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs a bearer token for subsequent requests. Login does this
// automatically.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError is the decoded error envelope plus the HTTP status it came with.
type APIError struct {
	StatusCode  int
	Kind        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Description)
	}
	return fmt.Sprintf("%s (%d)", e.Kind, e.StatusCode)
}

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type TokenResponse struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	Scope        string `json:"scope"`
	User         User   `json:"user"`
}

type Slot struct {
	ID          int       `json:"id"`
	TutorID     int       `json:"tutorId"`
	TutorName   string    `json:"tutorName,omitempty"`
	Subject     string    `json:"subject"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Capacity    int       `json:"capacity"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
}

type SlotPayload struct {
	Subject     string  `json:"subject,omitempty"`
	StartTime   string  `json:"startTime,omitempty"`
	EndTime     string  `json:"endTime,omitempty"`
	Capacity    int     `json:"capacity,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status,omitempty"`
}

type BookResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Login exchanges credentials for a token pair and keeps the access token for
// later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	body := map[string]string{
		"grant_type": "password",
		"username":   username,
		"password":   password,
	}
	var resp TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/token", nil, body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.AccessToken
	return &resp, nil
}

func (c *Client) CreateSlot(ctx context.Context, payload SlotPayload) (int, error) {
	var resp struct {
		ID int `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/slots/create", nil, payload, &resp); err != nil {
		return 0, err
	}
	return resp.ID, nil
}

func (c *Client) GetSlot(ctx context.Context, id int) (*Slot, error) {
	var slot Slot
	if err := c.do(ctx, http.MethodGet, "/api/slots/"+strconv.Itoa(id), nil, nil, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (c *Client) UpdateSlot(ctx context.Context, id int, payload SlotPayload) error {
	return c.do(ctx, http.MethodPut, "/api/slots/"+strconv.Itoa(id), nil, payload, nil)
}

// Slots lists slots with optional tutorId/status filters; zero values mean no
// filter.
func (c *Client) Slots(ctx context.Context, tutorID int, status string) ([]Slot, error) {
	query := url.Values{}
	if tutorID != 0 {
		query.Set("tutorId", strconv.Itoa(tutorID))
	}
	if status != "" {
		query.Set("status", status)
	}
	var slots []Slot
	if err := c.do(ctx, http.MethodGet, "/api/slots", query, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) AvailableSlots(ctx context.Context) ([]Slot, error) {
	var slots []Slot
	if err := c.do(ctx, http.MethodGet, "/api/slots/available", nil, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SearchSlots returns an empty slice when the server answers 404, mirroring
// the frontend wrapper.
func (c *Client) SearchSlots(ctx context.Context, term, filterType, date string) ([]Slot, error) {
	query := url.Values{}
	if term != "" {
		query.Set("searchTerm", term)
	}
	if filterType != "" {
		query.Set("filterType", filterType)
	}
	if date != "" {
		query.Set("date", date)
	}
	var slots []Slot
	err := c.do(ctx, http.MethodGet, "/api/slots/search", query, nil, &slots)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return []Slot{}, nil
		}
		return nil, err
	}
	return slots, nil
}

func (c *Client) BookSlot(ctx context.Context, id int) (*BookResult, error) {
	var result BookResult
	if err := c.do(ctx, http.MethodPost, "/api/slots/book/"+strconv.Itoa(id), nil, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) MySlots(ctx context.Context) ([]Slot, error) {
	var slots []Slot
	if err := c.do(ctx, http.MethodGet, "/api/slots/myslots", nil, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Kind: "server_error"}
		json.NewDecoder(resp.Body).Decode(apiErr)
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
