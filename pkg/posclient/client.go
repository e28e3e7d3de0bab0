// Package posclient is the terminal side of the platform: a typed HTTP client
// for the billing endpoints that satisfies the billing engine's Catalog,
// CustomerLookup, CustomerGetter and SaleCreator interfaces.
package posclient

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

	"github.com/pahanaedu/pos-platform/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrUnauthorized means the stored token was rejected; the terminal should
// send the cashier back to the login screen.
var ErrUnauthorized = errors.New("posclient: unauthorized")

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetToken swaps the bearer token after a fresh login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
}

type apiError struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {

	var payload *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(raw)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}

	if !env.Success {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}

	if dest != nil {
		if err := json.Unmarshal(env.Data, dest); err != nil {
			return fmt.Errorf("decoding payload from %s: %w", path, err)
		}
	}

	return nil
}

// Login authenticates the cashier. The caller stores the token in a Session
// and hands it back via SetToken.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login", bytes.NewReader(mustJSON(models.LoginRequest{
		Username: username,
		Password: password,
	})))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling login: %w", err)
	}

	defer resp.Body.Close()

	// Rejected credentials come back as a bare LoginResponse, not the
	// envelope, so the terminal can show the remaining tries.
	if resp.StatusCode == http.StatusUnauthorized {
		loginResp := &models.LoginResponse{}
		if err := json.NewDecoder(resp.Body).Decode(loginResp); err != nil {
			return nil, fmt.Errorf("decoding login response: %w", err)
		}
		return loginResp, nil
	}

	// Throttled logins use the error envelope with a Retry-After header.
	if resp.StatusCode == http.StatusTooManyRequests {
		var env envelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return nil, fmt.Errorf("decoding login response: %w", err)
		}

		loginResp := &models.LoginResponse{Success: false}
		if env.Error != nil {
			loginResp.Message = env.Error.Message
		}
		if retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			loginResp.RetryAfter = retryAfter
		}

		return loginResp, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}

	if !env.Success {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}

	loginResp := &models.LoginResponse{}
	if err := json.Unmarshal(env.Data, loginResp); err != nil {
		return nil, fmt.Errorf("decoding login payload: %w", err)
	}

	if loginResp.Success {
		c.token = loginResp.Token
	}

	return loginResp, nil
}

func mustJSON(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}

// ItemByID satisfies the cart's Catalog. A 404 comes back as (nil, nil):
// unknown item, not a transport failure.
func (c *Client) ItemByID(ctx context.Context, id int64) (*models.Item, error) {

	item := &models.Item{}
	err := c.do(ctx, http.MethodGet, "/api/items/"+strconv.FormatInt(id, 10), nil, item)

	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Code == "NOT_FOUND" {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return item, nil
}

// SearchItems backs the item picker on the billing screen.
func (c *Client) SearchItems(ctx context.Context, name string, page int) ([]*models.Item, int, error) {

	query := url.Values{}
	query.Set("name", name)
	query.Set("page", strconv.Itoa(page))

	result := struct {
		Data     []*models.Item `json:"data"`
		Total    int            `json:"total"`
		Page     int            `json:"page"`
		PageSize int            `json:"pageSize"`
	}{}

	if err := c.do(ctx, http.MethodGet, "/api/items/search?"+query.Encode(), nil, &result); err != nil {
		return nil, 0, err
	}

	return result.Data, result.Total, nil
}

// CustomerByTelephone satisfies the resolver's CustomerLookup. (nil, nil)
// means no customer carries the number and the form should unlock for a new
// registration.
func (c *Client) CustomerByTelephone(ctx context.Context, telephone string) (*models.Customer, error) {

	customer := &models.Customer{}
	err := c.do(ctx, http.MethodGet, "/api/customers/telephone?number="+url.QueryEscape(telephone), nil, customer)

	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Code == "NOT_FOUND" {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return customer, nil
}

// CustomerByID satisfies the checkout's CustomerGetter for receipt building.
func (c *Client) CustomerByID(ctx context.Context, id int64) (*models.Customer, error) {

	customer := &models.Customer{}
	if err := c.do(ctx, http.MethodGet, "/api/customers/"+strconv.FormatInt(id, 10), nil, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// CreateSale satisfies the checkout's SaleCreator.
func (c *Client) CreateSale(ctx context.Context, req *models.CreateSaleRequest) (*models.Sale, error) {

	sale := &models.Sale{}
	if err := c.do(ctx, http.MethodPost, "/api/sales", req, sale); err != nil {
		return nil, err
	}

	return sale, nil
}
