package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("qdrant: not found")

const defaultTimeout = 30 * time.Second

// Client is the Qdrant HTTP API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Qdrant client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// CollectionExists reports whether the collection is present.
func (c *Client) CollectionExists(ctx context.Context, name string) (bool, error) {
	err := c.do(ctx, http.MethodGet, "/collections/"+name, nil, nil)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateCollection creates a new collection with the given configuration.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) error {
	return c.do(ctx, http.MethodPut, "/collections/"+req.Name, req, nil)
}

// CreatePayloadIndex indexes a payload field so filters on it stay fast.
func (c *Client) CreatePayloadIndex(ctx context.Context, collectionName string, req CreateIndexRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/index?wait=true", collectionName), req, nil)
}

// UpsertPoints inserts or updates points and waits until they are searchable.
func (c *Client) UpsertPoints(ctx context.Context, collectionName string, req UpsertPointsRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s/points?wait=true", collectionName), req, nil)
}

// SearchPoints performs semantic search in a collection.
func (c *Client) SearchPoints(ctx context.Context, collectionName string, req SearchRequest) (*SearchResponse, error) {
	var result SearchResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/search", collectionName), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Scroll returns one page of points matching the request filter.
func (c *Client) Scroll(ctx context.Context, collectionName string, req ScrollRequest) (*ScrollResponse, error) {
	var result ScrollResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/scroll", collectionName), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RetrievePoints fetches points by id. Unknown ids are silently absent from the result.
func (c *Client) RetrievePoints(ctx context.Context, collectionName string, req RetrieveRequest) (*RetrieveResponse, error) {
	var result RetrieveResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points", collectionName), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeletePoints deletes points by IDs.
func (c *Client) DeletePoints(ctx context.Context, collectionName string, ids []string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/delete?wait=true", collectionName),
		DeletePointsRequest{Points: ids}, nil)
}

// DeleteByFilter deletes every point matching the filter.
func (c *Client) DeleteByFilter(ctx context.Context, collectionName string, filter Filter) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/collections/%s/points/delete?wait=true", collectionName),
		DeletePointsRequest{Filter: &filter}, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call qdrant API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("qdrant API error: %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
