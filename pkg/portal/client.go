// Package portal is the driver-side half of the product: an HTTP client for
// the driver API, the shell that decides between login and dashboard, and the
// dashboard state machine that polls for trips.
package portal

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

	"ridepilot/pkg/models"
)

// APIError is a non-2xx answer from the driver API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("driver api: status %d", e.Status)
	}
	return fmt.Sprintf("driver api: status %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient talks to the API rooted at baseURL. A nil httpClient gets a 15s timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type authResponse struct {
	Success bool                   `json:"success"`
	Driver  *models.DriverIdentity `json:"driver"`
}

func (c *Client) Login(ctx context.Context, code, pin string) (*models.DriverIdentity, error) {
	body := map[string]string{"driverId": code, "pin": pin}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/driver/login", body, "", &resp); err != nil {
		return nil, err
	}
	if resp.Driver == nil {
		return nil, fmt.Errorf("driver api: login response without driver")
	}
	return resp.Driver, nil
}

func (c *Client) AuthByToken(ctx context.Context, token string) (*models.DriverIdentity, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodGet, "/api/driver/auth/"+url.PathEscape(token), nil, "", &resp); err != nil {
		return nil, err
	}
	if resp.Driver == nil {
		return nil, fmt.Errorf("driver api: token response without driver")
	}
	return resp.Driver, nil
}

// Projects returns the driver's active trips. A missing list decodes as empty.
func (c *Client) Projects(ctx context.Context, driverUUID string) ([]*models.Trip, error) {
	var resp struct {
		Projects []*models.Trip `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/driver/"+url.PathEscape(driverUUID)+"/projects", nil, "", &resp); err != nil {
		return nil, err
	}
	if resp.Projects == nil {
		return []*models.Trip{}, nil
	}
	return resp.Projects, nil
}

// RegenerateToken asks the API for a new magic-link token. bearer is sent
// as the Authorization header when non-empty.
func (c *Client) RegenerateToken(ctx context.Context, driverID, bearer string) (string, error) {
	var resp struct {
		Success  bool   `json:"success"`
		NewToken string `json:"newToken"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/driver/regenerate-token/"+url.PathEscape(driverID), nil, bearer, &resp); err != nil {
		return "", err
	}
	return resp.NewToken, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, bearer string, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(res.Body).Decode(&payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
