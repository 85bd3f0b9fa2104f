package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kurihiro0119/github-repo-inventory/internal/domain"
)

// Client is the API client for github-repo-inventory
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListInventories retrieves all stored inventories without records
func (c *Client) ListInventories(ctx context.Context) ([]*domain.Inventory, error) {
	var response struct {
		Data []*domain.Inventory `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/inventories", &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetInventory retrieves one inventory without records
func (c *Client) GetInventory(ctx context.Context, id string) (*domain.Inventory, error) {
	var response struct {
		Data *domain.Inventory `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/inventories/"+url.PathEscape(id), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetRecords retrieves the records of an inventory in export order
func (c *Client) GetRecords(ctx context.Context, id string) ([]domain.RepositoryRecord, error) {
	var response struct {
		Data []domain.RepositoryRecord `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/inventories/"+url.PathEscape(id)+"/records", &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetSummary retrieves aggregated figures of an inventory
func (c *Client) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	var response struct {
		Data *domain.Summary `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/inventories/"+url.PathEscape(id)+"/summary", &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// HealthCheck checks if the API is healthy
func (c *Client) HealthCheck(ctx context.Context) error {
	var response struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", &response); err != nil {
		return err
	}
	if response.Status != "ok" {
		return fmt.Errorf("unhealthy status: %s", response.Status)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
