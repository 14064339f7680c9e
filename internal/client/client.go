package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/post-editor/internal/dto"
	"github.com/BloggingApp/post-editor/internal/model"
	"go.uber.org/zap"
)

// Client is a typed facade over the remote posts collection. Calls are never
// retried; errors reach the caller unchanged.
type Client struct {
	logger     *zap.Logger
	baseURL    string
	httpClient *http.Client
}

func New(logger *zap.Logger, baseURL string, httpClient *http.Client) *Client {
	return &Client{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *Client) ListPosts(ctx context.Context) ([]model.Post, error) {
	var resp dto.PostsResponse
	if err := c.do(ctx, "list posts", http.MethodGet, "/posts", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Posts == nil {
		return []model.Post{}, nil
	}
	return resp.Posts, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (*model.Post, error) {
	var resp dto.PostResponse
	if err := c.do(ctx, "get post", http.MethodGet, postPath(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

// CreatePost stores post under its caller-assigned id.
func (c *Client) CreatePost(ctx context.Context, post model.Post) (*model.Post, error) {
	if !post.HasID() {
		return nil, ErrMissingID
	}

	var resp dto.PostResponse
	if err := c.do(ctx, "create post", http.MethodPost, "/posts", post, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

func (c *Client) UpdatePost(ctx context.Context, post model.Post) (*model.Post, error) {
	if !post.HasID() {
		return nil, ErrMissingID
	}

	var resp dto.PostResponse
	if err := c.do(ctx, "update post", http.MethodPut, postPath(*post.ID), post, &resp); err != nil {
		return nil, err
	}
	return &resp.Post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	return c.do(ctx, "delete post", http.MethodDelete, postPath(id), nil, nil)
}

func postPath(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, in interface{}, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Debugf("failed to send %s request: %s", op, err.Error())
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var basic dto.BasicResponse
		details := ""
		if err := json.Unmarshal(respBody, &basic); err == nil {
			details = basic.Details
		}
		c.logger.Sugar().Debugf("ERROR from posts endpoint(%s %s), code(%d), details: %s", method, path, resp.StatusCode, details)
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Details: details}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}
