// Package client is a Go client for the books HTTP API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/dreamware/bookshelf/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// Client talks to one books service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the service at baseURL (e.g. "http://127.0.0.1:3333").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

type bookInput struct {
	Name   string `json:"name"`
	Author string `json:"author"`
}

// List returns all books, or those whose author contains author when it is non-empty.
func (c *Client) List(ctx context.Context, author string) ([]storage.Book, error) {
	path := "/books"
	if author != "" {
		path += "?" + url.Values{"author": {author}}.Encode()
	}
	var out []storage.Book
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a book and returns it with its generated id.
func (c *Client) Create(ctx context.Context, name, author string) (storage.Book, error) {
	var out storage.Book
	err := c.do(ctx, http.MethodPost, "/books", bookInput{Name: name, Author: author}, &out)
	return out, err
}

// Replace overwrites name and author of the book with id.
func (c *Client) Replace(ctx context.Context, id, name, author string) (storage.Book, error) {
	var out storage.Book
	err := c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), bookInput{Name: name, Author: author}, &out)
	return out, err
}

// Delete removes the book with id.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		reqBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(reqBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var eb struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Message = eb.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
